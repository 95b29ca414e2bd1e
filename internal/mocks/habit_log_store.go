package mocks

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/nexotime/nexotime/internal/domain"
	"github.com/nexotime/nexotime/internal/store"
)

// MockHabitLogStore implements store.HabitLogStore for testing
type MockHabitLogStore struct {
	// Function fields for customizable behavior
	UpsertFn           func(ctx context.Context, log *domain.HabitLog) (*domain.HabitLog, error)
	ListByDateFn       func(ctx context.Context, userID uuid.UUID, date time.Time) ([]*domain.HabitLog, error)
	ListByHabitSinceFn func(ctx context.Context, userID, habitID uuid.UUID, since time.Time) ([]*domain.HabitLog, error)

	// Data for default implementation
	Logs []*domain.HabitLog
}

// NewMockHabitLogStore creates a new mock store with initialized defaults
func NewMockHabitLogStore() *MockHabitLogStore {
	return &MockHabitLogStore{}
}

// Upsert implements the HabitLogStore interface
func (m *MockHabitLogStore) Upsert(ctx context.Context, log *domain.HabitLog) (*domain.HabitLog, error) {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, log)
	}

	for _, existing := range m.Logs {
		if existing.HabitID == log.HabitID && existing.LogDate.Equal(log.LogDate) {
			existing.Completed = log.Completed
			existing.UpdatedAt = time.Now().UTC()
			return existing, nil
		}
	}
	m.Logs = append(m.Logs, log)
	return log, nil
}

// ListByDate implements the HabitLogStore interface
func (m *MockHabitLogStore) ListByDate(
	ctx context.Context,
	userID uuid.UUID,
	date time.Time,
) ([]*domain.HabitLog, error) {
	if m.ListByDateFn != nil {
		return m.ListByDateFn(ctx, userID, date)
	}

	day := domain.TruncateToDate(date)
	var logs []*domain.HabitLog
	for _, log := range m.Logs {
		if log.UserID == userID && log.LogDate.Equal(day) {
			logs = append(logs, log)
		}
	}
	return logs, nil
}

// ListByHabitSince implements the HabitLogStore interface
func (m *MockHabitLogStore) ListByHabitSince(
	ctx context.Context,
	userID, habitID uuid.UUID,
	since time.Time,
) ([]*domain.HabitLog, error) {
	if m.ListByHabitSinceFn != nil {
		return m.ListByHabitSinceFn(ctx, userID, habitID, since)
	}

	cutoff := domain.TruncateToDate(since)
	var logs []*domain.HabitLog
	for _, log := range m.Logs {
		if log.UserID == userID && log.HabitID == habitID && !log.LogDate.Before(cutoff) {
			logs = append(logs, log)
		}
	}
	sort.Slice(logs, func(i, j int) bool { return logs[i].LogDate.After(logs[j].LogDate) })
	return logs, nil
}

// WithTx implements the HabitLogStore interface for transaction support
func (m *MockHabitLogStore) WithTx(tx *sql.Tx) store.HabitLogStore {
	return m
}
