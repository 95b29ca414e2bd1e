package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultHabitIcon is assigned when a habit is created without an icon.
const DefaultHabitIcon = "✅"

// MaxHabitNameLength bounds habit names to keep Telegram messages readable.
const MaxHabitNameLength = 100

// Common validation errors for Habit
var (
	ErrEmptyHabitID     = errors.New("habit ID cannot be empty")
	ErrEmptyHabitUserID = errors.New("habit user ID cannot be empty")
	ErrEmptyHabitName   = errors.New("habit name cannot be empty")
	ErrHabitNameTooLong = errors.New("habit name is too long")
)

// Habit represents a recurring behavior a user tracks daily.
// Habits are soft-deleted: deactivating one preserves its log history.
type Habit struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewHabit creates a new active Habit owned by the given user.
// An empty icon falls back to DefaultHabitIcon.
// Returns an error if validation fails.
func NewHabit(userID uuid.UUID, name, icon string) (*Habit, error) {
	if icon == "" {
		icon = DefaultHabitIcon
	}

	habit := &Habit{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      strings.TrimSpace(name),
		Icon:      icon,
		Active:    true,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := habit.Validate(); err != nil {
		return nil, err
	}

	return habit, nil
}

// Validate checks if the Habit has valid data.
// Returns an error if any field fails validation.
func (h *Habit) Validate() error {
	if h.ID == uuid.Nil {
		return ErrEmptyHabitID
	}

	if h.UserID == uuid.Nil {
		return ErrEmptyHabitUserID
	}

	if h.Name == "" {
		return ErrEmptyHabitName
	}

	if len(h.Name) > MaxHabitNameLength {
		return ErrHabitNameTooLong
	}

	return nil
}
