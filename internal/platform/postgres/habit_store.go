package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nexotime/nexotime/internal/domain"
	"github.com/nexotime/nexotime/internal/platform/logger"
	"github.com/nexotime/nexotime/internal/store"
)

// PostgresHabitStore implements the store.HabitStore interface
// using a PostgreSQL database as the storage backend.
type PostgresHabitStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresHabitStore creates a new PostgreSQL implementation of the
// HabitStore interface. If logger is nil, a default logger will be used.
func NewPostgresHabitStore(db store.DBTX, logger *slog.Logger) *PostgresHabitStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresHabitStore{
		db:     db,
		logger: logger.With(slog.String("component", "habit_store")),
	}
}

// Ensure PostgresHabitStore implements store.HabitStore interface
var _ store.HabitStore = (*PostgresHabitStore)(nil)

// WithTx implements store.HabitStore.WithTx
func (s *PostgresHabitStore) WithTx(tx *sql.Tx) store.HabitStore {
	return &PostgresHabitStore{db: tx, logger: s.logger}
}

// Create implements store.HabitStore.Create
// Returns store.ErrInvalidEntity if the owning user does not exist.
func (s *PostgresHabitStore) Create(ctx context.Context, habit *domain.Habit) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := habit.Validate(); err != nil {
		log.Warn("habit validation failed during create",
			slog.String("error", err.Error()),
			slog.String("habit_id", habit.ID.String()))
		return err
	}

	query := `
		INSERT INTO habits (id, user_id, name, icon, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		habit.ID,
		habit.UserID,
		habit.Name,
		habit.Icon,
		habit.Active,
		habit.CreatedAt,
		habit.UpdatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during habit creation",
				slog.String("habit_id", habit.ID.String()),
				slog.String("user_id", habit.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, habit.UserID)
		}

		log.Error("failed to create habit",
			slog.String("error", err.Error()),
			slog.String("habit_id", habit.ID.String()))
		return MapError(err)
	}

	log.Info("habit created successfully",
		slog.String("habit_id", habit.ID.String()),
		slog.String("user_id", habit.UserID.String()))
	return nil
}

// GetForUser implements store.HabitStore.GetForUser
// Returns store.ErrHabitNotFound for missing or foreign-owned habits.
func (s *PostgresHabitStore) GetForUser(ctx context.Context, userID, habitID uuid.UUID) (*domain.Habit, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, name, icon, active, created_at, updated_at
		FROM habits
		WHERE id = $1 AND user_id = $2
	`

	var habit domain.Habit
	err := s.db.QueryRowContext(ctx, query, habitID, userID).Scan(
		&habit.ID,
		&habit.UserID,
		&habit.Name,
		&habit.Icon,
		&habit.Active,
		&habit.CreatedAt,
		&habit.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrHabitNotFound
		}
		log.Error("failed to get habit",
			slog.String("error", err.Error()),
			slog.String("habit_id", habitID.String()))
		return nil, MapError(err)
	}

	return &habit, nil
}

// ListActive implements store.HabitStore.ListActive
func (s *PostgresHabitStore) ListActive(ctx context.Context, userID uuid.UUID) ([]*domain.Habit, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, name, icon, active, created_at, updated_at
		FROM habits
		WHERE user_id = $1 AND active = TRUE
		ORDER BY created_at
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list habits",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var habits []*domain.Habit
	for rows.Next() {
		var habit domain.Habit
		if err := rows.Scan(
			&habit.ID,
			&habit.UserID,
			&habit.Name,
			&habit.Icon,
			&habit.Active,
			&habit.CreatedAt,
			&habit.UpdatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		habits = append(habits, &habit)
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return habits, nil
}

// Update implements store.HabitStore.Update
// Only name and icon are mutable; ownership is enforced in the WHERE clause.
func (s *PostgresHabitStore) Update(ctx context.Context, habit *domain.Habit) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := habit.Validate(); err != nil {
		log.Warn("habit validation failed during update",
			slog.String("error", err.Error()),
			slog.String("habit_id", habit.ID.String()))
		return err
	}

	habit.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE habits
		SET name = $1, icon = $2, updated_at = $3
		WHERE id = $4 AND user_id = $5
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		habit.Name,
		habit.Icon,
		habit.UpdatedAt,
		habit.ID,
		habit.UserID,
	)
	if err != nil {
		log.Error("failed to update habit",
			slog.String("error", err.Error()),
			slog.String("habit_id", habit.ID.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrHabitNotFound)
}

// Deactivate implements store.HabitStore.Deactivate
// Soft delete: the row stays so the log history keeps its reference.
func (s *PostgresHabitStore) Deactivate(ctx context.Context, userID, habitID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE habits
		SET active = FALSE, updated_at = $1
		WHERE id = $2 AND user_id = $3 AND active = TRUE
	`
	result, err := s.db.ExecContext(ctx, query, time.Now().UTC(), habitID, userID)
	if err != nil {
		log.Error("failed to deactivate habit",
			slog.String("error", err.Error()),
			slog.String("habit_id", habitID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrHabitNotFound); err != nil {
		return err
	}

	log.Info("habit deactivated",
		slog.String("habit_id", habitID.String()),
		slog.String("user_id", userID.String()))
	return nil
}
