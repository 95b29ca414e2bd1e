package api

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/nexotime/nexotime/internal/api/shared"
	"github.com/nexotime/nexotime/internal/domain"
	"github.com/nexotime/nexotime/internal/service/summary"
	"github.com/nexotime/nexotime/internal/store"
)

// LogHandler handles habit tracking and summary HTTP requests.
type LogHandler struct {
	habitStore store.HabitStore
	logStore   store.HabitLogStore
	summaries  *summary.Service
	validator  *validator.Validate
}

// NewLogHandler creates a new LogHandler.
func NewLogHandler(
	habitStore store.HabitStore,
	logStore store.HabitLogStore,
	summaries *summary.Service,
) *LogHandler {
	return &LogHandler{
		habitStore: habitStore,
		logStore:   logStore,
		summaries:  summaries,
		validator:  validator.New(),
	}
}

// UpsertLog handles POST /api/logs requests. Logging the same habit and
// date twice updates the entry instead of duplicating it.
func (h *LogHandler) UpsertLog(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req UpsertLogRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	// Ownership check: the habit must be the caller's and still active.
	habit, err := h.habitStore.GetForUser(r.Context(), userID, req.HabitID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get habit")
		return
	}
	if !habit.Active {
		HandleAPIError(w, r, store.ErrHabitNotFound, "")
		return
	}

	date, err := time.Parse(domain.LogDateFormat, req.Date)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid date: must be YYYY-MM-DD")
		return
	}

	log, err := domain.NewHabitLog(userID, req.HabitID, date, req.Completed)
	if err != nil {
		HandleAPIError(w, r, err, "Invalid log data")
		return
	}

	stored, err := h.logStore.Upsert(r.Context(), log)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to record log")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, logToResponse(stored))
}

// GetDaySummary handles GET /api/logs/{date} requests.
func (h *LogHandler) GetDaySummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	date, err := dateParam(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	daySummary, err := h.summaries.Day(r.Context(), userID, date)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute day summary")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, daySummary)
}

// GetWeekSummary handles GET /api/logs/week/{date} requests. The week
// covers the seven days ending at {date}.
func (h *LogHandler) GetWeekSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	date, err := dateParam(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	weekSummary, err := h.summaries.Week(r.Context(), userID, date)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute week summary")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, weekSummary)
}
