package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nexotime/nexotime/internal/domain"
	"github.com/nexotime/nexotime/internal/platform/logger"
	"github.com/nexotime/nexotime/internal/store"
)

// PostgresRoutineStore implements the store.RoutineStore interface
// using a PostgreSQL database as the storage backend.
type PostgresRoutineStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresRoutineStore creates a new PostgreSQL implementation of the
// RoutineStore interface. If logger is nil, a default logger will be used.
func NewPostgresRoutineStore(db store.DBTX, logger *slog.Logger) *PostgresRoutineStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresRoutineStore{
		db:     db,
		logger: logger.With(slog.String("component", "routine_store")),
	}
}

// Ensure PostgresRoutineStore implements store.RoutineStore interface
var _ store.RoutineStore = (*PostgresRoutineStore)(nil)

// WithTx implements store.RoutineStore.WithTx
func (s *PostgresRoutineStore) WithTx(tx *sql.Tx) store.RoutineStore {
	return &PostgresRoutineStore{db: tx, logger: s.logger}
}

// Create implements store.RoutineStore.Create
// Returns store.ErrInvalidEntity if the owning user does not exist.
func (s *PostgresRoutineStore) Create(ctx context.Context, step *domain.RoutineStep) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := step.Validate(); err != nil {
		log.Warn("routine step validation failed during create",
			slog.String("error", err.Error()),
			slog.String("step_id", step.ID.String()))
		return err
	}

	query := `
		INSERT INTO routine_steps (id, user_id, routine_type, step_order, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		step.ID,
		step.UserID,
		step.Type,
		step.StepOrder,
		step.Description,
		step.CreatedAt,
		step.UpdatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, step.UserID)
		}
		log.Error("failed to create routine step",
			slog.String("error", err.Error()),
			slog.String("step_id", step.ID.String()))
		return MapError(err)
	}

	return nil
}

// ListByType implements store.RoutineStore.ListByType
func (s *PostgresRoutineStore) ListByType(
	ctx context.Context,
	userID uuid.UUID,
	routineType domain.RoutineType,
) ([]*domain.RoutineStep, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, routine_type, step_order, description, created_at, updated_at
		FROM routine_steps
		WHERE user_id = $1 AND routine_type = $2
		ORDER BY step_order
	`

	rows, err := s.db.QueryContext(ctx, query, userID, routineType)
	if err != nil {
		log.Error("failed to list routine steps",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("routine_type", string(routineType)))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var steps []*domain.RoutineStep
	for rows.Next() {
		var step domain.RoutineStep
		if err := rows.Scan(
			&step.ID,
			&step.UserID,
			&step.Type,
			&step.StepOrder,
			&step.Description,
			&step.CreatedAt,
			&step.UpdatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		steps = append(steps, &step)
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return steps, nil
}

// Replace implements store.RoutineStore.Replace
// Delete-then-insert inside the caller-visible connection. Callers wanting
// atomicity run this through WithTx inside store.RunInTransaction.
func (s *PostgresRoutineStore) Replace(
	ctx context.Context,
	userID uuid.UUID,
	routineType domain.RoutineType,
	steps []*domain.RoutineStep,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deleteQuery := `
		DELETE FROM routine_steps
		WHERE user_id = $1 AND routine_type = $2
	`
	if _, err := s.db.ExecContext(ctx, deleteQuery, userID, routineType); err != nil {
		log.Error("failed to clear routine",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("routine_type", string(routineType)))
		return MapError(err)
	}

	for i, step := range steps {
		// Renumber in slice order regardless of the incoming step_order.
		step.StepOrder = i + 1
		step.UserID = userID
		step.Type = routineType

		if err := s.Create(ctx, step); err != nil {
			return err
		}
	}

	log.Info("routine replaced",
		slog.String("user_id", userID.String()),
		slog.String("routine_type", string(routineType)),
		slog.Int("steps", len(steps)))
	return nil
}

// Delete implements store.RoutineStore.Delete
// Returns store.ErrRoutineStepNotFound for missing or foreign-owned steps.
func (s *PostgresRoutineStore) Delete(ctx context.Context, userID, stepID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM routine_steps
		WHERE id = $1 AND user_id = $2
	`
	result, err := s.db.ExecContext(ctx, query, stepID, userID)
	if err != nil {
		log.Error("failed to delete routine step",
			slog.String("error", err.Error()),
			slog.String("step_id", stepID.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrRoutineStepNotFound)
}
