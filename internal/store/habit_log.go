package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/nexotime/nexotime/internal/domain"
)

// HabitLogStore defines the interface for daily tracking entry persistence.
type HabitLogStore interface {
	// Upsert records a completion state for (habit, date). When an entry
	// already exists for that habit and date it is updated in place; the
	// returned log reflects the stored row either way.
	// Returns ErrInvalidEntity if the habit or user does not exist.
	Upsert(ctx context.Context, log *domain.HabitLog) (*domain.HabitLog, error)

	// ListByDate returns the user's log entries for one calendar date.
	ListByDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]*domain.HabitLog, error)

	// ListByHabitSince returns the habit's entries with log_date >= since,
	// newest first, scoped to the owner. Used for streak computation.
	ListByHabitSince(ctx context.Context, userID, habitID uuid.UUID, since time.Time) ([]*domain.HabitLog, error)

	// WithTx returns a new HabitLogStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) HabitLogStore
}
