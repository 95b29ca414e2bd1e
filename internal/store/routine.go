package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/nexotime/nexotime/internal/domain"
)

// RoutineStore defines the interface for routine step persistence.
type RoutineStore interface {
	// Create saves a new routine step.
	// Returns ErrInvalidEntity if the owning user does not exist.
	Create(ctx context.Context, step *domain.RoutineStep) error

	// ListByType returns the user's steps for one routine, ordered by
	// step_order ascending.
	ListByType(ctx context.Context, userID uuid.UUID, routineType domain.RoutineType) ([]*domain.RoutineStep, error)

	// Replace atomically swaps the whole routine of the given type for the
	// provided steps, renumbering step_order 1..n in slice order.
	Replace(ctx context.Context, userID uuid.UUID, routineType domain.RoutineType, steps []*domain.RoutineStep) error

	// Delete removes one step, scoped to the owner.
	// Returns ErrRoutineStepNotFound if it does not exist or is owned by
	// another user.
	Delete(ctx context.Context, userID, stepID uuid.UUID) error

	// WithTx returns a new RoutineStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) RoutineStore
}
