package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/nexotime/nexotime/internal/api/shared"
	"github.com/nexotime/nexotime/internal/domain"
	"github.com/nexotime/nexotime/internal/store"
)

// ReminderHandler handles reminder schedule HTTP requests.
type ReminderHandler struct {
	reminderStore store.ReminderStore
	validator     *validator.Validate
}

// NewReminderHandler creates a new ReminderHandler.
func NewReminderHandler(reminderStore store.ReminderStore) *ReminderHandler {
	return &ReminderHandler{
		reminderStore: reminderStore,
		validator:     validator.New(),
	}
}

// CreateReminder handles POST /api/reminders requests.
func (h *ReminderHandler) CreateReminder(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateReminderRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	timeOfDay, err := domain.ParseTimeOfDay(req.Time)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid time: must be HH:MM in 24-hour format")
		return
	}

	reminder, err := domain.NewReminder(userID, domain.ReminderKind(req.Kind), timeOfDay)
	if err != nil {
		HandleAPIError(w, r, err, "Invalid reminder data")
		return
	}

	if err := h.reminderStore.Create(r.Context(), reminder); err != nil {
		HandleAPIError(w, r, err, "Failed to create reminder")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, reminderToResponse(reminder))
}

// ListReminders handles GET /api/reminders requests.
func (h *ReminderHandler) ListReminders(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	reminders, err := h.reminderStore.ListForUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list reminders")
		return
	}

	responses := make([]ReminderResponse, 0, len(reminders))
	for _, reminder := range reminders {
		responses = append(responses, reminderToResponse(reminder))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// DeleteReminder handles DELETE /api/reminders/{id} requests.
func (h *ReminderHandler) DeleteReminder(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	reminderID, ok := requirePathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.reminderStore.Delete(r.Context(), userID, reminderID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete reminder")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
