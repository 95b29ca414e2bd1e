package api

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/nexotime/nexotime/internal/api/shared"
	"github.com/nexotime/nexotime/internal/domain"
	"github.com/nexotime/nexotime/internal/store"
)

// RoutineHandler handles morning and night routine HTTP requests.
type RoutineHandler struct {
	routineStore store.RoutineStore
	db           *sql.DB
	validator    *validator.Validate
}

// NewRoutineHandler creates a new RoutineHandler. The database handle is
// needed so routine replacement can run inside a transaction.
func NewRoutineHandler(routineStore store.RoutineStore, db *sql.DB) *RoutineHandler {
	return &RoutineHandler{
		routineStore: routineStore,
		db:           db,
		validator:    validator.New(),
	}
}

// routineTypeParam parses the {type} path parameter.
func routineTypeParam(r *http.Request) (domain.RoutineType, error) {
	routineType := domain.RoutineType(chi.URLParam(r, "type"))
	if !domain.ValidRoutineType(routineType) {
		return "", domain.NewValidationError("type", "must be morning or night", domain.ErrValidation)
	}
	return routineType, nil
}

// CreateRoutineStep handles POST /api/routines requests, appending one step.
func (h *RoutineHandler) CreateRoutineStep(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateRoutineStepRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	step, err := domain.NewRoutineStep(userID, domain.RoutineType(req.Type), req.StepOrder, req.Description)
	if err != nil {
		HandleAPIError(w, r, err, "Invalid routine step")
		return
	}

	if err := h.routineStore.Create(r.Context(), step); err != nil {
		HandleAPIError(w, r, err, "Failed to create routine step")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, stepToResponse(step))
}

// GetRoutine handles GET /api/routines/{type} requests.
func (h *RoutineHandler) GetRoutine(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	routineType, err := routineTypeParam(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	steps, err := h.routineStore.ListByType(r.Context(), userID, routineType)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list routine")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, routineToResponse(routineType, steps))
}

// ReplaceRoutine handles PUT /api/routines/{type} requests. The whole
// routine is swapped atomically; an empty steps list clears it.
func (h *RoutineHandler) ReplaceRoutine(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	routineType, err := routineTypeParam(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req ReplaceRoutineRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	steps := make([]*domain.RoutineStep, 0, len(req.Steps))
	for i, payload := range req.Steps {
		step, err := domain.NewRoutineStep(userID, routineType, i+1, payload.Description)
		if err != nil {
			HandleAPIError(w, r, err, "Invalid routine step")
			return
		}
		steps = append(steps, step)
	}

	err = store.RunInTransaction(r.Context(), h.db, func(ctx context.Context, tx *sql.Tx) error {
		return h.routineStore.WithTx(tx).Replace(ctx, userID, routineType, steps)
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to replace routine")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, routineToResponse(routineType, steps))
}

// DeleteRoutineStep handles DELETE /api/routines/steps/{id} requests.
func (h *RoutineHandler) DeleteRoutineStep(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	stepID, ok := requirePathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.routineStore.Delete(r.Context(), userID, stepID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete routine step")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
