package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RoutineType identifies which daily routine a step belongs to.
type RoutineType string

// Possible routine types
const (
	RoutineMorning RoutineType = "morning"
	RoutineNight   RoutineType = "night"
)

// Common validation errors for RoutineStep
var (
	ErrEmptyRoutineStepID     = errors.New("routine step ID cannot be empty")
	ErrEmptyRoutineUserID     = errors.New("routine step user ID cannot be empty")
	ErrInvalidRoutineType     = errors.New("invalid routine type")
	ErrInvalidRoutineOrder    = errors.New("routine step order must be positive")
	ErrEmptyRoutineDescription = errors.New("routine step description cannot be empty")
)

// RoutineStep is one ordered step of a user's morning or night routine.
type RoutineStep struct {
	ID          uuid.UUID   `json:"id"`
	UserID      uuid.UUID   `json:"user_id"`
	Type        RoutineType `json:"type"`
	StepOrder   int         `json:"step_order"`
	Description string      `json:"description"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// NewRoutineStep creates a new RoutineStep for the given user and routine.
// Returns an error if validation fails.
func NewRoutineStep(userID uuid.UUID, routineType RoutineType, stepOrder int, description string) (*RoutineStep, error) {
	step := &RoutineStep{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        routineType,
		StepOrder:   stepOrder,
		Description: strings.TrimSpace(description),
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := step.Validate(); err != nil {
		return nil, err
	}

	return step, nil
}

// Validate checks if the RoutineStep has valid data.
// Returns an error if any field fails validation.
func (s *RoutineStep) Validate() error {
	if s.ID == uuid.Nil {
		return ErrEmptyRoutineStepID
	}

	if s.UserID == uuid.Nil {
		return ErrEmptyRoutineUserID
	}

	if !ValidRoutineType(s.Type) {
		return ErrInvalidRoutineType
	}

	if s.StepOrder < 1 {
		return ErrInvalidRoutineOrder
	}

	if s.Description == "" {
		return ErrEmptyRoutineDescription
	}

	return nil
}

// ValidRoutineType reports whether t is a known routine type.
func ValidRoutineType(t RoutineType) bool {
	return t == RoutineMorning || t == RoutineNight
}
