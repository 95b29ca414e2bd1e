package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ReminderKind identifies what a scheduled reminder nags about.
type ReminderKind string

// Possible reminder kinds
const (
	ReminderMorning ReminderKind = "morning" // morning routine steps
	ReminderHabits  ReminderKind = "habits"  // habit checklist
	ReminderNight   ReminderKind = "night"   // night routine steps
	ReminderSummary ReminderKind = "summary" // end-of-day summary
)

// Common validation errors for Reminder
var (
	ErrEmptyReminderID     = errors.New("reminder ID cannot be empty")
	ErrEmptyReminderUserID = errors.New("reminder user ID cannot be empty")
	ErrInvalidReminderKind = errors.New("invalid reminder kind")
	ErrInvalidReminderTime = errors.New("reminder time must be in HH:MM 24-hour format")
)

// Reminder is a recurring daily notification schedule. TimeOfDay is the
// wall-clock minute ("HH:MM", 24h) at which the reminder fires, evaluated
// in the scheduler's configured timezone.
type Reminder struct {
	ID        uuid.UUID    `json:"id"`
	UserID    uuid.UUID    `json:"user_id"`
	Kind      ReminderKind `json:"kind"`
	TimeOfDay string       `json:"time"`
	Active    bool         `json:"active"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// NewReminder creates a new active Reminder for the given user. TimeOfDay
// is stored in its canonical zero-padded form so scheduler lookups match.
// Returns an error if validation fails.
func NewReminder(userID uuid.UUID, kind ReminderKind, timeOfDay string) (*Reminder, error) {
	canonical, err := ParseTimeOfDay(timeOfDay)
	if err != nil {
		return nil, err
	}

	reminder := &Reminder{
		ID:        uuid.New(),
		UserID:    userID,
		Kind:      kind,
		TimeOfDay: canonical,
		Active:    true,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := reminder.Validate(); err != nil {
		return nil, err
	}

	return reminder, nil
}

// Validate checks if the Reminder has valid data.
// Returns an error if any field fails validation.
func (r *Reminder) Validate() error {
	if r.ID == uuid.Nil {
		return ErrEmptyReminderID
	}

	if r.UserID == uuid.Nil {
		return ErrEmptyReminderUserID
	}

	if !ValidReminderKind(r.Kind) {
		return ErrInvalidReminderKind
	}

	if _, err := ParseTimeOfDay(r.TimeOfDay); err != nil {
		return err
	}

	return nil
}

// ValidReminderKind reports whether k is a known reminder kind.
func ValidReminderKind(k ReminderKind) bool {
	switch k {
	case ReminderMorning, ReminderHabits, ReminderNight, ReminderSummary:
		return true
	}
	return false
}

// ParseTimeOfDay parses an "HH:MM" 24-hour wall-clock string and returns
// the canonical zero-padded form. Returns ErrInvalidReminderTime when the
// input does not parse.
func ParseTimeOfDay(s string) (string, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return "", ErrInvalidReminderTime
	}
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()), nil
}
