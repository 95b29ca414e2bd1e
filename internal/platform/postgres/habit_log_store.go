package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nexotime/nexotime/internal/domain"
	"github.com/nexotime/nexotime/internal/platform/logger"
	"github.com/nexotime/nexotime/internal/store"
)

// PostgresHabitLogStore implements the store.HabitLogStore interface
// using a PostgreSQL database as the storage backend.
type PostgresHabitLogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresHabitLogStore creates a new PostgreSQL implementation of the
// HabitLogStore interface. If logger is nil, a default logger will be used.
func NewPostgresHabitLogStore(db store.DBTX, logger *slog.Logger) *PostgresHabitLogStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresHabitLogStore{
		db:     db,
		logger: logger.With(slog.String("component", "habit_log_store")),
	}
}

// Ensure PostgresHabitLogStore implements store.HabitLogStore interface
var _ store.HabitLogStore = (*PostgresHabitLogStore)(nil)

// WithTx implements store.HabitLogStore.WithTx
func (s *PostgresHabitLogStore) WithTx(tx *sql.Tx) store.HabitLogStore {
	return &PostgresHabitLogStore{db: tx, logger: s.logger}
}

// Upsert implements store.HabitLogStore.Upsert
// ON CONFLICT on the (habit_id, log_date) unique index keeps one entry per
// habit per day; re-logging flips the completed flag in place.
func (s *PostgresHabitLogStore) Upsert(ctx context.Context, log *domain.HabitLog) (*domain.HabitLog, error) {
	lg := logger.FromContextOrDefault(ctx, s.logger)

	if err := log.Validate(); err != nil {
		lg.Warn("habit log validation failed during upsert",
			slog.String("error", err.Error()),
			slog.String("log_id", log.ID.String()))
		return nil, err
	}

	query := `
		INSERT INTO habit_logs (id, user_id, habit_id, log_date, completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (habit_id, log_date)
		DO UPDATE SET completed = EXCLUDED.completed, updated_at = EXCLUDED.updated_at
		RETURNING id, user_id, habit_id, log_date, completed, created_at, updated_at
	`

	now := time.Now().UTC()
	var stored domain.HabitLog
	err := s.db.QueryRowContext(
		ctx,
		query,
		log.ID,
		log.UserID,
		log.HabitID,
		log.LogDate,
		log.Completed,
		log.CreatedAt,
		now,
	).Scan(
		&stored.ID,
		&stored.UserID,
		&stored.HabitID,
		&stored.LogDate,
		&stored.Completed,
		&stored.CreatedAt,
		&stored.UpdatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: habit with ID %s not found",
				store.ErrInvalidEntity, log.HabitID)
		}
		lg.Error("failed to upsert habit log",
			slog.String("error", err.Error()),
			slog.String("habit_id", log.HabitID.String()))
		return nil, MapError(err)
	}

	stored.LogDate = domain.TruncateToDate(stored.LogDate)

	lg.Debug("habit log recorded",
		slog.String("log_id", stored.ID.String()),
		slog.String("habit_id", stored.HabitID.String()),
		slog.Bool("completed", stored.Completed))
	return &stored, nil
}

// ListByDate implements store.HabitLogStore.ListByDate
func (s *PostgresHabitLogStore) ListByDate(
	ctx context.Context,
	userID uuid.UUID,
	date time.Time,
) ([]*domain.HabitLog, error) {
	query := `
		SELECT id, user_id, habit_id, log_date, completed, created_at, updated_at
		FROM habit_logs
		WHERE user_id = $1 AND log_date = $2
	`
	return s.list(ctx, query, userID, domain.TruncateToDate(date))
}

// ListByHabitSince implements store.HabitLogStore.ListByHabitSince
func (s *PostgresHabitLogStore) ListByHabitSince(
	ctx context.Context,
	userID, habitID uuid.UUID,
	since time.Time,
) ([]*domain.HabitLog, error) {
	query := `
		SELECT id, user_id, habit_id, log_date, completed, created_at, updated_at
		FROM habit_logs
		WHERE user_id = $1 AND habit_id = $2 AND log_date >= $3
		ORDER BY log_date DESC
	`
	return s.list(ctx, query, userID, habitID, domain.TruncateToDate(since))
}

func (s *PostgresHabitLogStore) list(ctx context.Context, query string, args ...any) ([]*domain.HabitLog, error) {
	lg := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		lg.Error("failed to list habit logs",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var logs []*domain.HabitLog
	for rows.Next() {
		var log domain.HabitLog
		if err := rows.Scan(
			&log.ID,
			&log.UserID,
			&log.HabitID,
			&log.LogDate,
			&log.Completed,
			&log.CreatedAt,
			&log.UpdatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		log.LogDate = domain.TruncateToDate(log.LogDate)
		logs = append(logs, &log)
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return logs, nil
}
