package telegram

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexotime/nexotime/internal/domain"
	"github.com/nexotime/nexotime/internal/events"
	"github.com/nexotime/nexotime/internal/mocks"
	"github.com/nexotime/nexotime/internal/service/summary"
)

// fakeSender records outbound messages instead of hitting Telegram.
type fakeSender struct {
	sent    []tgbotapi.MessageConfig
	sendErr error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.sendErr != nil {
		return tgbotapi.Message{}, f.sendErr
	}
	msg, ok := c.(tgbotapi.MessageConfig)
	if ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, nil
}

func newTestNotifier(t *testing.T, sender *fakeSender) (*Notifier, uuid.UUID) {
	t.Helper()

	userID := uuid.New()

	habitStore := mocks.NewMockHabitStore()
	habit, err := domain.NewHabit(userID, "Meditate", "")
	require.NoError(t, err)
	habitStore.Habits[habit.ID] = habit

	routineStore := mocks.NewMockRoutineStore()
	step, err := domain.NewRoutineStep(userID, domain.RoutineMorning, 1, "Drink water")
	require.NoError(t, err)
	routineStore.Steps[step.ID] = step

	summaries := summary.NewService(habitStore, mocks.NewMockHabitLogStore())
	return NewNotifier(sender, routineStore, summaries, nil), userID
}

func reminderEvent(t *testing.T, userID uuid.UUID, kind string) json.RawMessage {
	t.Helper()

	data, err := json.Marshal(events.ReminderDue{
		ReminderID: uuid.New(),
		UserID:     userID,
		TelegramID: "12345",
		Kind:       kind,
		TimeOfDay:  "07:30",
		Date:       time.Now().Format(domain.LogDateFormat),
	})
	require.NoError(t, err)
	return data
}

func TestHandleReminderDue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		kind         string
		wantFragment string
	}{
		{name: "morning routine", kind: "morning", wantFragment: "Drink water"},
		{name: "night routine", kind: "night", wantFragment: "Night routine"},
		{name: "habit checklist", kind: "habits", wantFragment: "⬜ Meditate"},
		{name: "day summary", kind: "summary", wantFragment: "Completed 0 of 1 habits"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &fakeSender{}
			notifier, userID := newTestNotifier(t, sender)

			err := notifier.HandleReminderDue(context.Background(), reminderEvent(t, userID, tt.kind))
			require.NoError(t, err)

			require.Len(t, sender.sent, 1)
			assert.Equal(t, int64(12345), sender.sent[0].ChatID)
			assert.Contains(t, sender.sent[0].Text, tt.wantFragment)
		})
	}
}

func TestHandleReminderDueRejectsBadPayload(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	notifier, _ := newTestNotifier(t, sender)

	err := notifier.HandleReminderDue(context.Background(), json.RawMessage(`not json`))
	require.Error(t, err)
	assert.Empty(t, sender.sent)
}

func TestHandleReminderDueUnknownKind(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	notifier, userID := newTestNotifier(t, sender)

	err := notifier.HandleReminderDue(context.Background(), reminderEvent(t, userID, "weekly"))
	require.Error(t, err)
	assert.Empty(t, sender.sent)
}

func TestHandleReminderDueSendFailure(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{sendErr: assert.AnError}
	notifier, userID := newTestNotifier(t, sender)

	err := notifier.HandleReminderDue(context.Background(), reminderEvent(t, userID, "morning"))
	assert.Error(t, err)
}
