// Package reminder runs the minute-resolution scheduler that turns stored
// reminder rows into broker events at their configured time of day.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nexotime/nexotime/internal/domain"
	"github.com/nexotime/nexotime/internal/events"
	"github.com/nexotime/nexotime/internal/platform/metrics"
	"github.com/nexotime/nexotime/internal/store"
)

// Publisher is the broker surface the scheduler needs. Satisfied by
// *rabbitmq.Publisher.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// Scheduler wakes every minute, looks up reminders due at that wall-clock
// minute in its configured timezone, and publishes one event per due
// reminder. Delivery is at-most-once: a failed publish is logged and the
// minute moves on.
type Scheduler struct {
	reminders store.ReminderStore
	publisher Publisher
	location  *time.Location
	logger    *slog.Logger

	timeFunc func() time.Time // Injectable for testing

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	started bool
}

// NewScheduler creates a Scheduler evaluating reminder times in the given
// IANA timezone. If logger is nil, a default logger will be used.
func NewScheduler(
	reminders store.ReminderStore,
	publisher Publisher,
	timezone string,
	logger *slog.Logger,
) (*Scheduler, error) {
	if reminders == nil {
		panic("reminders cannot be nil")
	}
	if publisher == nil {
		panic("publisher cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid scheduler timezone %q: %w", timezone, err)
	}

	return &Scheduler{
		reminders: reminders,
		publisher: publisher,
		location:  location,
		logger:    logger.With(slog.String("component", "reminder_scheduler")),
		timeFunc:  time.Now,
	}, nil
}

// Start launches the scheduling loop in a goroutine. It aligns the first
// tick to the next minute boundary so reminders fire at :00 seconds.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true

	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	go s.run(ctx)

	s.logger.Info("reminder scheduler started",
		slog.String("timezone", s.location.String()))
}

// Stop cancels the loop and waits for the in-flight tick to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.started = false

	s.cancel()
	<-s.done

	s.logger.Info("reminder scheduler stopped")
}

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.done)

	for {
		now := s.timeFunc()
		next := now.Truncate(time.Minute).Add(time.Minute)

		select {
		case <-ctx.Done():
			return
		case <-time.After(next.Sub(now)):
		}

		s.Tick(ctx, next)
	}
}

// Tick processes one scheduler minute: every active reminder whose
// time_of_day matches now's wall-clock minute (in the scheduler timezone)
// is published as a reminder.due event.
func (s *Scheduler) Tick(ctx context.Context, now time.Time) {
	local := now.In(s.location)
	minute := local.Format("15:04")

	due, err := s.reminders.ListDue(ctx, minute)
	if err != nil {
		s.logger.Error("failed to list due reminders",
			slog.String("error", err.Error()),
			slog.String("minute", minute))
		return
	}

	if len(due) == 0 {
		return
	}

	date := local.Format(domain.LogDateFormat)
	published := 0

	for _, d := range due {
		event := events.ReminderDue{
			ReminderID: d.Reminder.ID,
			UserID:     d.Reminder.UserID,
			TelegramID: d.TelegramID,
			Kind:       string(d.Reminder.Kind),
			TimeOfDay:  d.Reminder.TimeOfDay,
			Date:       date,
		}

		if err := s.publisher.Publish(ctx, events.ReminderDueKey, event); err != nil {
			s.logger.Error("failed to publish reminder event",
				slog.String("error", err.Error()),
				slog.String("reminder_id", d.Reminder.ID.String()))
			continue
		}

		metrics.IncrementRemindersDispatched(string(d.Reminder.Kind))
		published++
	}

	s.logger.Info("reminder minute processed",
		slog.String("minute", minute),
		slog.Int("due", len(due)),
		slog.Int("published", published))
}
