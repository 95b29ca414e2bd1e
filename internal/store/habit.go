package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/nexotime/nexotime/internal/domain"
)

// HabitStore defines the interface for habit data persistence.
// All lookups are scoped to the owning user: a habit belonging to someone
// else behaves exactly like a missing habit.
type HabitStore interface {
	// Create saves a new habit to the store.
	// Returns ErrInvalidEntity if the owning user does not exist.
	Create(ctx context.Context, habit *domain.Habit) error

	// GetForUser retrieves a habit by ID, scoped to the owner.
	// Returns ErrHabitNotFound if it does not exist or is owned by
	// another user.
	GetForUser(ctx context.Context, userID, habitID uuid.UUID) (*domain.Habit, error)

	// ListActive returns the user's active habits ordered by creation time.
	ListActive(ctx context.Context, userID uuid.UUID) ([]*domain.Habit, error)

	// Update modifies the habit's name and icon.
	// Returns ErrHabitNotFound if it does not exist or is owned by
	// another user.
	Update(ctx context.Context, habit *domain.Habit) error

	// Deactivate soft-deletes the habit, preserving its log history.
	// Returns ErrHabitNotFound if it does not exist or is owned by
	// another user.
	Deactivate(ctx context.Context, userID, habitID uuid.UUID) error

	// WithTx returns a new HabitStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) HabitStore
}
