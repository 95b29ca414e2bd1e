package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/nexotime/nexotime/internal/api/shared"
	"github.com/nexotime/nexotime/internal/domain"
	"github.com/nexotime/nexotime/internal/service/summary"
	"github.com/nexotime/nexotime/internal/store"
)

// HabitHandler handles habit-related HTTP requests.
type HabitHandler struct {
	habitStore store.HabitStore
	summaries  *summary.Service
	validator  *validator.Validate
}

// NewHabitHandler creates a new HabitHandler.
func NewHabitHandler(habitStore store.HabitStore, summaries *summary.Service) *HabitHandler {
	return &HabitHandler{
		habitStore: habitStore,
		summaries:  summaries,
		validator:  validator.New(),
	}
}

// CreateHabit handles POST /api/habits requests.
func (h *HabitHandler) CreateHabit(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateHabitRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	habit, err := domain.NewHabit(userID, req.Name, req.Icon)
	if err != nil {
		HandleAPIError(w, r, err, "Invalid habit data")
		return
	}

	if err := h.habitStore.Create(r.Context(), habit); err != nil {
		HandleAPIError(w, r, err, "Failed to create habit")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, habitToResponse(habit))
}

// ListHabits handles GET /api/habits requests. Only active habits are returned.
func (h *HabitHandler) ListHabits(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	habits, err := h.habitStore.ListActive(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list habits")
		return
	}

	responses := make([]HabitResponse, 0, len(habits))
	for _, habit := range habits {
		responses = append(responses, habitToResponse(habit))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// GetHabit handles GET /api/habits/{id} requests.
func (h *HabitHandler) GetHabit(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	habitID, ok := requirePathUUID(w, r, "id")
	if !ok {
		return
	}

	habit, err := h.habitStore.GetForUser(r.Context(), userID, habitID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get habit")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, habitToResponse(habit))
}

// UpdateHabit handles PUT /api/habits/{id} requests.
func (h *HabitHandler) UpdateHabit(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	habitID, ok := requirePathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateHabitRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	habit, err := h.habitStore.GetForUser(r.Context(), userID, habitID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get habit")
		return
	}

	habit.Name = req.Name
	if req.Icon != "" {
		habit.Icon = req.Icon
	}

	if err := h.habitStore.Update(r.Context(), habit); err != nil {
		HandleAPIError(w, r, err, "Failed to update habit")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, habitToResponse(habit))
}

// DeleteHabit handles DELETE /api/habits/{id} requests. The habit is
// deactivated rather than removed so its log history survives.
func (h *HabitHandler) DeleteHabit(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	habitID, ok := requirePathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.habitStore.Deactivate(r.Context(), userID, habitID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete habit")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetHabitStats handles GET /api/habits/{id}/stats requests.
func (h *HabitHandler) GetHabitStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	habitID, ok := requirePathUUID(w, r, "id")
	if !ok {
		return
	}

	stats, err := h.summaries.HabitStats(r.Context(), userID, habitID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute habit stats")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}
