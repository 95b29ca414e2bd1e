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

// PostgresReminderStore implements the store.ReminderStore interface
// using a PostgreSQL database as the storage backend.
type PostgresReminderStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReminderStore creates a new PostgreSQL implementation of the
// ReminderStore interface. If logger is nil, a default logger will be used.
func NewPostgresReminderStore(db store.DBTX, logger *slog.Logger) *PostgresReminderStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresReminderStore{
		db:     db,
		logger: logger.With(slog.String("component", "reminder_store")),
	}
}

// Ensure PostgresReminderStore implements store.ReminderStore interface
var _ store.ReminderStore = (*PostgresReminderStore)(nil)

// WithTx implements store.ReminderStore.WithTx
func (s *PostgresReminderStore) WithTx(tx *sql.Tx) store.ReminderStore {
	return &PostgresReminderStore{db: tx, logger: s.logger}
}

// Create implements store.ReminderStore.Create
// Returns store.ErrInvalidEntity if the owning user does not exist.
func (s *PostgresReminderStore) Create(ctx context.Context, reminder *domain.Reminder) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := reminder.Validate(); err != nil {
		log.Warn("reminder validation failed during create",
			slog.String("error", err.Error()),
			slog.String("reminder_id", reminder.ID.String()))
		return err
	}

	query := `
		INSERT INTO reminders (id, user_id, kind, time_of_day, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		reminder.ID,
		reminder.UserID,
		reminder.Kind,
		reminder.TimeOfDay,
		reminder.Active,
		reminder.CreatedAt,
		reminder.UpdatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, reminder.UserID)
		}
		log.Error("failed to create reminder",
			slog.String("error", err.Error()),
			slog.String("reminder_id", reminder.ID.String()))
		return MapError(err)
	}

	log.Info("reminder created",
		slog.String("reminder_id", reminder.ID.String()),
		slog.String("kind", string(reminder.Kind)),
		slog.String("time_of_day", reminder.TimeOfDay))
	return nil
}

// ListForUser implements store.ReminderStore.ListForUser
func (s *PostgresReminderStore) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Reminder, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, kind, time_of_day, active, created_at, updated_at
		FROM reminders
		WHERE user_id = $1
		ORDER BY time_of_day, created_at
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list reminders",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var reminders []*domain.Reminder
	for rows.Next() {
		var reminder domain.Reminder
		if err := rows.Scan(
			&reminder.ID,
			&reminder.UserID,
			&reminder.Kind,
			&reminder.TimeOfDay,
			&reminder.Active,
			&reminder.CreatedAt,
			&reminder.UpdatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		reminders = append(reminders, &reminder)
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return reminders, nil
}

// Delete implements store.ReminderStore.Delete
// Returns store.ErrReminderNotFound for missing or foreign-owned reminders.
func (s *PostgresReminderStore) Delete(ctx context.Context, userID, reminderID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM reminders
		WHERE id = $1 AND user_id = $2
	`
	result, err := s.db.ExecContext(ctx, query, reminderID, userID)
	if err != nil {
		log.Error("failed to delete reminder",
			slog.String("error", err.Error()),
			slog.String("reminder_id", reminderID.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrReminderNotFound)
}

// ListDue implements store.ReminderStore.ListDue
// Joins against users so only linked accounts come back; the scheduler has
// nowhere to deliver anything else.
func (s *PostgresReminderStore) ListDue(ctx context.Context, timeOfDay string) ([]*store.DueReminder, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT r.id, r.user_id, r.kind, r.time_of_day, r.active, r.created_at, r.updated_at,
		       u.telegram_id
		FROM reminders r
		JOIN users u ON u.id = r.user_id
		WHERE r.active = TRUE
		  AND r.time_of_day = $1
		  AND u.telegram_id IS NOT NULL
	`

	rows, err := s.db.QueryContext(ctx, query, timeOfDay)
	if err != nil {
		log.Error("failed to list due reminders",
			slog.String("error", err.Error()),
			slog.String("time_of_day", timeOfDay))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var due []*store.DueReminder
	for rows.Next() {
		var reminder domain.Reminder
		var telegramID string
		if err := rows.Scan(
			&reminder.ID,
			&reminder.UserID,
			&reminder.Kind,
			&reminder.TimeOfDay,
			&reminder.Active,
			&reminder.CreatedAt,
			&reminder.UpdatedAt,
			&telegramID,
		); err != nil {
			return nil, MapError(err)
		}
		due = append(due, &store.DueReminder{Reminder: &reminder, TelegramID: telegramID})
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return due, nil
}
