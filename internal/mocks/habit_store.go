package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/nexotime/nexotime/internal/domain"
	"github.com/nexotime/nexotime/internal/store"
)

// MockHabitStore implements store.HabitStore for testing
type MockHabitStore struct {
	// Function fields for customizable behavior
	CreateFn     func(ctx context.Context, habit *domain.Habit) error
	GetForUserFn func(ctx context.Context, userID, habitID uuid.UUID) (*domain.Habit, error)
	ListActiveFn func(ctx context.Context, userID uuid.UUID) ([]*domain.Habit, error)
	UpdateFn     func(ctx context.Context, habit *domain.Habit) error
	DeactivateFn func(ctx context.Context, userID, habitID uuid.UUID) error

	// Data for default implementation
	Habits map[uuid.UUID]*domain.Habit
}

// NewMockHabitStore creates a new mock store with initialized defaults
func NewMockHabitStore() *MockHabitStore {
	return &MockHabitStore{
		Habits: make(map[uuid.UUID]*domain.Habit),
	}
}

// Create implements the HabitStore interface
func (m *MockHabitStore) Create(ctx context.Context, habit *domain.Habit) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, habit)
	}

	m.Habits[habit.ID] = habit
	return nil
}

// GetForUser implements the HabitStore interface
func (m *MockHabitStore) GetForUser(ctx context.Context, userID, habitID uuid.UUID) (*domain.Habit, error) {
	if m.GetForUserFn != nil {
		return m.GetForUserFn(ctx, userID, habitID)
	}

	habit, exists := m.Habits[habitID]
	if !exists || habit.UserID != userID {
		return nil, store.ErrHabitNotFound
	}
	return habit, nil
}

// ListActive implements the HabitStore interface
func (m *MockHabitStore) ListActive(ctx context.Context, userID uuid.UUID) ([]*domain.Habit, error) {
	if m.ListActiveFn != nil {
		return m.ListActiveFn(ctx, userID)
	}

	var habits []*domain.Habit
	for _, habit := range m.Habits {
		if habit.UserID == userID && habit.Active {
			habits = append(habits, habit)
		}
	}
	return habits, nil
}

// Update implements the HabitStore interface
func (m *MockHabitStore) Update(ctx context.Context, habit *domain.Habit) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, habit)
	}

	existing, exists := m.Habits[habit.ID]
	if !exists || existing.UserID != habit.UserID {
		return store.ErrHabitNotFound
	}
	m.Habits[habit.ID] = habit
	return nil
}

// Deactivate implements the HabitStore interface
func (m *MockHabitStore) Deactivate(ctx context.Context, userID, habitID uuid.UUID) error {
	if m.DeactivateFn != nil {
		return m.DeactivateFn(ctx, userID, habitID)
	}

	habit, exists := m.Habits[habitID]
	if !exists || habit.UserID != userID || !habit.Active {
		return store.ErrHabitNotFound
	}
	habit.Active = false
	return nil
}

// WithTx implements the HabitStore interface for transaction support
func (m *MockHabitStore) WithTx(tx *sql.Tx) store.HabitStore {
	return m
}
