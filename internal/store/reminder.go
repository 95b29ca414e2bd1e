package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/nexotime/nexotime/internal/domain"
)

// DueReminder pairs a reminder with the delivery address of its owner.
// Only reminders whose owner has linked Telegram are ever due.
type DueReminder struct {
	Reminder   *domain.Reminder
	TelegramID string
}

// ReminderStore defines the interface for reminder persistence.
type ReminderStore interface {
	// Create saves a new reminder.
	// Returns ErrInvalidEntity if the owning user does not exist.
	Create(ctx context.Context, reminder *domain.Reminder) error

	// ListForUser returns all of the user's reminders ordered by time of day.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Reminder, error)

	// Delete removes a reminder, scoped to the owner.
	// Returns ErrReminderNotFound if it does not exist or is owned by
	// another user.
	Delete(ctx context.Context, userID, reminderID uuid.UUID) error

	// ListDue returns active reminders scheduled for the given "HH:MM"
	// wall-clock minute whose owners have a linked Telegram account.
	ListDue(ctx context.Context, timeOfDay string) ([]*DueReminder, error)

	// WithTx returns a new ReminderStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ReminderStore
}
