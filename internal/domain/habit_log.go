package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// LogDateFormat is the wire and storage format for tracking dates.
const LogDateFormat = "2006-01-02"

// Common validation errors for HabitLog
var (
	ErrEmptyHabitLogID      = errors.New("habit log ID cannot be empty")
	ErrEmptyHabitLogUserID  = errors.New("habit log user ID cannot be empty")
	ErrEmptyHabitLogHabitID = errors.New("habit log habit ID cannot be empty")
	ErrEmptyHabitLogDate    = errors.New("habit log date cannot be empty")
)

// HabitLog records whether a habit was completed on a given date.
// At most one log exists per (habit, date); logging the same day again
// updates the existing entry.
type HabitLog struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	HabitID   uuid.UUID `json:"habit_id"`
	LogDate   time.Time `json:"date"` // date component only, UTC midnight
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewHabitLog creates a new HabitLog for the given user, habit, and date.
// The date is truncated to UTC midnight. Returns an error if validation fails.
func NewHabitLog(userID, habitID uuid.UUID, logDate time.Time, completed bool) (*HabitLog, error) {
	log := &HabitLog{
		ID:        uuid.New(),
		UserID:    userID,
		HabitID:   habitID,
		LogDate:   TruncateToDate(logDate),
		Completed: completed,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := log.Validate(); err != nil {
		return nil, err
	}

	return log, nil
}

// Validate checks if the HabitLog has valid data.
// Returns an error if any field fails validation.
func (l *HabitLog) Validate() error {
	if l.ID == uuid.Nil {
		return ErrEmptyHabitLogID
	}

	if l.UserID == uuid.Nil {
		return ErrEmptyHabitLogUserID
	}

	if l.HabitID == uuid.Nil {
		return ErrEmptyHabitLogHabitID
	}

	if l.LogDate.IsZero() {
		return ErrEmptyHabitLogDate
	}

	return nil
}

// TruncateToDate strips the time component, keeping the calendar date at
// UTC midnight. All habit log dates are normalized through this.
func TruncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
