package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexotime/nexotime/internal/domain"
	"github.com/nexotime/nexotime/internal/events"
	"github.com/nexotime/nexotime/internal/mocks"
	"github.com/nexotime/nexotime/internal/store"
)

func dueReminder(t *testing.T, kind domain.ReminderKind, timeOfDay, telegramID string) *store.DueReminder {
	t.Helper()
	rem, err := domain.NewReminder(uuid.New(), kind, timeOfDay)
	require.NoError(t, err)
	return &store.DueReminder{Reminder: rem, TelegramID: telegramID}
}

func newTestScheduler(t *testing.T, reminders store.ReminderStore, publisher Publisher) *Scheduler {
	t.Helper()
	s, err := NewScheduler(reminders, publisher, "UTC", nil)
	require.NoError(t, err)
	return s
}

func TestNewSchedulerRejectsBadTimezone(t *testing.T) {
	_, err := NewScheduler(mocks.NewMockReminderStore(), &mocks.MockPublisher{}, "Not/AZone", nil)
	assert.Error(t, err)
}

func TestTickPublishesDueReminders(t *testing.T) {
	reminders := mocks.NewMockReminderStore()
	publisher := &mocks.MockPublisher{}

	morning := dueReminder(t, domain.ReminderMorning, "07:30", "111")
	habits := dueReminder(t, domain.ReminderHabits, "07:30", "222")
	later := dueReminder(t, domain.ReminderNight, "22:00", "333")
	reminders.Due = []*store.DueReminder{morning, habits, later}

	s := newTestScheduler(t, reminders, publisher)
	s.Tick(context.Background(), time.Date(2025, 3, 10, 7, 30, 0, 0, time.UTC))

	published := publisher.Published()
	require.Len(t, published, 2)

	for _, p := range published {
		assert.Equal(t, events.ReminderDueKey, p.RoutingKey)
		event, ok := p.Payload.(events.ReminderDue)
		require.True(t, ok)
		assert.Equal(t, "07:30", event.TimeOfDay)
		assert.Equal(t, "2025-03-10", event.Date)
	}
}

func TestTickRespectsTimezone(t *testing.T) {
	reminders := mocks.NewMockReminderStore()
	publisher := &mocks.MockPublisher{}

	// 07:30 in Helsinki is 05:30 UTC during EEST.
	rem := dueReminder(t, domain.ReminderMorning, "07:30", "111")
	reminders.Due = []*store.DueReminder{rem}

	s, err := NewScheduler(reminders, publisher, "Europe/Helsinki", nil)
	require.NoError(t, err)

	s.Tick(context.Background(), time.Date(2025, 6, 10, 4, 30, 0, 0, time.UTC))

	published := publisher.Published()
	require.Len(t, published, 1)
	event := published[0].Payload.(events.ReminderDue)
	assert.Equal(t, "07:30", event.TimeOfDay)
}

func TestTickContinuesAfterPublishError(t *testing.T) {
	reminders := mocks.NewMockReminderStore()
	reminders.Due = []*store.DueReminder{
		dueReminder(t, domain.ReminderMorning, "07:30", "111"),
		dueReminder(t, domain.ReminderHabits, "07:30", "222"),
	}

	var calls int
	publisher := &mocks.MockPublisher{
		PublishFn: func(ctx context.Context, routingKey string, payload any) error {
			calls++
			if calls == 1 {
				return errors.New("broker unavailable")
			}
			return nil
		},
	}

	s := newTestScheduler(t, reminders, publisher)
	s.Tick(context.Background(), time.Date(2025, 3, 10, 7, 30, 0, 0, time.UTC))

	// Both reminders were attempted despite the first failing.
	assert.Equal(t, 2, calls)
}

func TestStartStop(t *testing.T) {
	reminders := mocks.NewMockReminderStore()
	publisher := &mocks.MockPublisher{}

	s := newTestScheduler(t, reminders, publisher)
	s.Start(context.Background())
	s.Start(context.Background()) // second Start is a no-op
	s.Stop()
	s.Stop() // second Stop is a no-op
}
