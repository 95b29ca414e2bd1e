package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexotime/nexotime/internal/domain"
	"github.com/nexotime/nexotime/internal/mocks"
	"github.com/nexotime/nexotime/internal/platform/redis"
	"github.com/nexotime/nexotime/internal/service/telegramlink"
)

// memoryCodeStore is an in-memory telegramlink.CodeStore for handler tests.
type memoryCodeStore struct {
	mu    sync.Mutex
	codes map[string]uuid.UUID
}

func newMemoryCodeStore() *memoryCodeStore {
	return &memoryCodeStore{codes: make(map[string]uuid.UUID)}
}

func (s *memoryCodeStore) Put(_ context.Context, code string, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[code] = userID
	return nil
}

func (s *memoryCodeStore) Take(_ context.Context, code string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.codes[code]
	if !ok {
		return uuid.Nil, redis.ErrCodeNotFound
	}
	delete(s.codes, code)
	return userID, nil
}

func TestCreateLinkCode(t *testing.T) {
	t.Parallel()

	user, err := domain.NewUser("link@example.com", "Link User", "password123")
	require.NoError(t, err)

	userStore := mocks.NewMockUserStore()
	userStore.Users[user.Email] = user

	handler := NewTelegramHandler(telegramlink.NewService(userStore, newMemoryCodeStore(), nil))

	req := withUserID(httptest.NewRequest("POST", "/telegram/link-code", nil), user.ID)
	recorder := httptest.NewRecorder()
	handler.CreateLinkCode(recorder, req)

	require.Equal(t, http.StatusCreated, recorder.Code)

	var resp LinkCodeResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Len(t, resp.Code, 6)
	assert.Equal(t, int(redis.LinkCodeTTL.Seconds()), resp.ExpiresIn)
}

func TestCreateLinkCodeUnknownUser(t *testing.T) {
	t.Parallel()

	handler := NewTelegramHandler(telegramlink.NewService(mocks.NewMockUserStore(), newMemoryCodeStore(), nil))

	req := withUserID(httptest.NewRequest("POST", "/telegram/link-code", nil), uuid.New())
	recorder := httptest.NewRecorder()
	handler.CreateLinkCode(recorder, req)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
