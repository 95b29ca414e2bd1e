package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/nexotime/nexotime/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Name     string `json:"name"     validate:"required,min=1,max=100"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`

	// ExpiresAt is the ISO 8601 timestamp when the access token expires
	ExpiresAt string `json:"expires_at,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    string `json:"expires_at"`
}

// UserResponse represents the authenticated user's profile.
type UserResponse struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	TelegramLinked bool      `json:"telegram_linked"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateHabitRequest represents the request body for creating a habit.
type CreateHabitRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
	Icon string `json:"icon" validate:"max=16"`
}

// UpdateHabitRequest represents the request body for updating a habit.
type UpdateHabitRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
	Icon string `json:"icon" validate:"max=16"`
}

// HabitResponse represents the response data for a habit.
type HabitResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RoutineStepPayload is one step inside a routine replace request.
type RoutineStepPayload struct {
	Description string `json:"description" validate:"required,min=1,max=200"`
}

// CreateRoutineStepRequest represents the request body for appending a
// single routine step.
type CreateRoutineStepRequest struct {
	Type        string `json:"type" validate:"required,oneof=morning night"`
	StepOrder   int    `json:"step_order" validate:"required,gte=1"`
	Description string `json:"description" validate:"required,min=1,max=200"`
}

// ReplaceRoutineRequest represents the request body for replacing a routine.
// Steps are stored in slice order.
type ReplaceRoutineRequest struct {
	Steps []RoutineStepPayload `json:"steps" validate:"required,max=50,dive"`
}

// RoutineStepResponse represents one routine step.
type RoutineStepResponse struct {
	ID          uuid.UUID `json:"id"`
	Type        string    `json:"type"`
	StepOrder   int       `json:"step_order"`
	Description string    `json:"description"`
}

// RoutineResponse represents a full routine of one type.
type RoutineResponse struct {
	Type  string                `json:"type"`
	Steps []RoutineStepResponse `json:"steps"`
}

// CreateReminderRequest represents the request body for creating a reminder.
type CreateReminderRequest struct {
	Kind string `json:"kind" validate:"required,oneof=morning habits night summary"`
	Time string `json:"time" validate:"required"`
}

// ReminderResponse represents the response data for a reminder.
type ReminderResponse struct {
	ID        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"`
	Time      string    `json:"time"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// UpsertLogRequest represents the request body for recording a habit log.
type UpsertLogRequest struct {
	HabitID   uuid.UUID `json:"habit_id" validate:"required"`
	Date      string    `json:"date" validate:"required,datetime=2006-01-02"`
	Completed bool      `json:"completed"`
}

// HabitLogResponse represents one tracking entry.
type HabitLogResponse struct {
	ID        uuid.UUID `json:"id"`
	HabitID   uuid.UUID `json:"habit_id"`
	Date      string    `json:"date"`
	Completed bool      `json:"completed"`
}

// LinkCodeResponse represents a freshly issued Telegram link code.
type LinkCodeResponse struct {
	Code      string `json:"link_code"`
	ExpiresIn int    `json:"expires_in_seconds"`
}

// DTO conversion helpers

func habitToResponse(habit *domain.Habit) HabitResponse {
	return HabitResponse{
		ID:        habit.ID,
		Name:      habit.Name,
		Icon:      habit.Icon,
		Active:    habit.Active,
		CreatedAt: habit.CreatedAt,
		UpdatedAt: habit.UpdatedAt,
	}
}

func stepToResponse(step *domain.RoutineStep) RoutineStepResponse {
	return RoutineStepResponse{
		ID:          step.ID,
		Type:        string(step.Type),
		StepOrder:   step.StepOrder,
		Description: step.Description,
	}
}

func routineToResponse(routineType domain.RoutineType, steps []*domain.RoutineStep) RoutineResponse {
	resp := RoutineResponse{
		Type:  string(routineType),
		Steps: make([]RoutineStepResponse, 0, len(steps)),
	}
	for _, step := range steps {
		resp.Steps = append(resp.Steps, stepToResponse(step))
	}
	return resp
}

func reminderToResponse(reminder *domain.Reminder) ReminderResponse {
	return ReminderResponse{
		ID:        reminder.ID,
		Kind:      string(reminder.Kind),
		Time:      reminder.TimeOfDay,
		Active:    reminder.Active,
		CreatedAt: reminder.CreatedAt,
	}
}

func logToResponse(log *domain.HabitLog) HabitLogResponse {
	return HabitLogResponse{
		ID:        log.ID,
		HabitID:   log.HabitID,
		Date:      log.LogDate.Format(domain.LogDateFormat),
		Completed: log.Completed,
	}
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:             user.ID,
		Email:          user.Email,
		Name:           user.Name,
		TelegramLinked: user.TelegramLinked(),
		CreatedAt:      user.CreatedAt,
	}
}
