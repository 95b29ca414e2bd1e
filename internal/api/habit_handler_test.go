package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexotime/nexotime/internal/api/shared"
	"github.com/nexotime/nexotime/internal/domain"
	"github.com/nexotime/nexotime/internal/mocks"
	"github.com/nexotime/nexotime/internal/service/summary"
)

// withUserID simulates the authentication middleware for handler tests.
func withUserID(req *http.Request, userID uuid.UUID) *http.Request {
	ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
	return req.WithContext(ctx)
}

// withPathParam injects a chi URL parameter into the request context.
func withPathParam(req *http.Request, name, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(name, value)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx)
	return req.WithContext(ctx)
}

func newHabitHandler(habitStore *mocks.MockHabitStore) *HabitHandler {
	return NewHabitHandler(habitStore, summary.NewService(habitStore, mocks.NewMockHabitLogStore()))
}

func TestCreateHabit(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := []struct {
		name       string
		payload    map[string]interface{}
		wantStatus int
	}{
		{
			name:       "valid habit",
			payload:    map[string]interface{}{"name": "Meditate", "icon": "🧘"},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "icon optional",
			payload:    map[string]interface{}{"name": "Read"},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing name",
			payload:    map[string]interface{}{"icon": "📚"},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			habitStore := mocks.NewMockHabitStore()
			handler := newHabitHandler(habitStore)

			req := withUserID(postJSON(t, "/habits", tt.payload), userID)
			recorder := httptest.NewRecorder()
			handler.CreateHabit(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantStatus == http.StatusCreated {
				var resp HabitResponse
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
				assert.NotEqual(t, uuid.Nil, resp.ID)
				assert.Equal(t, tt.payload["name"], resp.Name)
				assert.True(t, resp.Active)
			}
		})
	}
}

func TestCreateHabitWithoutUser(t *testing.T) {
	t.Parallel()

	handler := newHabitHandler(mocks.NewMockHabitStore())

	recorder := httptest.NewRecorder()
	handler.CreateHabit(recorder, postJSON(t, "/habits", map[string]interface{}{"name": "Run"}))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestListHabits(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	otherID := uuid.New()

	habitStore := mocks.NewMockHabitStore()
	mine, err := domain.NewHabit(userID, "Meditate", "")
	require.NoError(t, err)
	habitStore.Habits[mine.ID] = mine

	inactive, err := domain.NewHabit(userID, "Old Habit", "")
	require.NoError(t, err)
	inactive.Active = false
	habitStore.Habits[inactive.ID] = inactive

	theirs, err := domain.NewHabit(otherID, "Their Habit", "")
	require.NoError(t, err)
	habitStore.Habits[theirs.ID] = theirs

	handler := newHabitHandler(habitStore)

	req := withUserID(httptest.NewRequest("GET", "/habits", nil), userID)
	recorder := httptest.NewRecorder()
	handler.ListHabits(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var resp []HabitResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, mine.ID, resp[0].ID)
	assert.Equal(t, "Meditate", resp[0].Name)
}

func TestGetHabit(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	habitStore := mocks.NewMockHabitStore()
	habit, err := domain.NewHabit(userID, "Meditate", "🧘")
	require.NoError(t, err)
	habitStore.Habits[habit.ID] = habit

	handler := newHabitHandler(habitStore)

	tests := []struct {
		name       string
		userID     uuid.UUID
		habitID    string
		wantStatus int
	}{
		{name: "owner gets habit", userID: userID, habitID: habit.ID.String(), wantStatus: http.StatusOK},
		{name: "other user gets 404", userID: uuid.New(), habitID: habit.ID.String(), wantStatus: http.StatusNotFound},
		{name: "unknown habit", userID: userID, habitID: uuid.New().String(), wantStatus: http.StatusNotFound},
		{name: "malformed id", userID: userID, habitID: "not-a-uuid", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/habits/"+tt.habitID, nil)
			req = withUserID(req, tt.userID)
			req = withPathParam(req, "id", tt.habitID)

			recorder := httptest.NewRecorder()
			handler.GetHabit(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}

func TestUpdateHabit(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	habitStore := mocks.NewMockHabitStore()
	habit, err := domain.NewHabit(userID, "Meditate", "🧘")
	require.NoError(t, err)
	habitStore.Habits[habit.ID] = habit

	handler := newHabitHandler(habitStore)

	payload := map[string]interface{}{"name": "Meditate Daily"}
	req := withUserID(postJSON(t, "/habits/"+habit.ID.String(), payload), userID)
	req = withPathParam(req, "id", habit.ID.String())

	recorder := httptest.NewRecorder()
	handler.UpdateHabit(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var resp HabitResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "Meditate Daily", resp.Name)
	// Icon is preserved when the payload omits it.
	assert.Equal(t, "🧘", resp.Icon)
}

func TestDeleteHabit(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	habitStore := mocks.NewMockHabitStore()
	habit, err := domain.NewHabit(userID, "Meditate", "")
	require.NoError(t, err)
	habitStore.Habits[habit.ID] = habit

	handler := newHabitHandler(habitStore)

	req := withUserID(httptest.NewRequest("DELETE", "/habits/"+habit.ID.String(), nil), userID)
	req = withPathParam(req, "id", habit.ID.String())

	recorder := httptest.NewRecorder()
	handler.DeleteHabit(recorder, req)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.False(t, habitStore.Habits[habit.ID].Active)

	// Deleting again returns 404 because the habit is already inactive.
	recorder = httptest.NewRecorder()
	handler.DeleteHabit(recorder, req)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestGetHabitStats(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	habitStore := mocks.NewMockHabitStore()
	habit, err := domain.NewHabit(userID, "Meditate", "")
	require.NoError(t, err)
	habitStore.Habits[habit.ID] = habit

	handler := newHabitHandler(habitStore)

	req := withUserID(httptest.NewRequest("GET", "/habits/"+habit.ID.String()+"/stats", nil), userID)
	req = withPathParam(req, "id", habit.ID.String())

	recorder := httptest.NewRecorder()
	handler.GetHabitStats(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var stats summary.HabitStats
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&stats))
	assert.Equal(t, habit.ID, stats.HabitID)
	assert.Equal(t, 0, stats.CurrentStreak)
}
