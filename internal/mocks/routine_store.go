package mocks

import (
	"context"
	"database/sql"
	"sort"

	"github.com/google/uuid"

	"github.com/nexotime/nexotime/internal/domain"
	"github.com/nexotime/nexotime/internal/store"
)

// MockRoutineStore implements store.RoutineStore for testing
type MockRoutineStore struct {
	// Function fields for customizable behavior
	CreateFn     func(ctx context.Context, step *domain.RoutineStep) error
	ListByTypeFn func(ctx context.Context, userID uuid.UUID, routineType domain.RoutineType) ([]*domain.RoutineStep, error)
	ReplaceFn    func(ctx context.Context, userID uuid.UUID, routineType domain.RoutineType, steps []*domain.RoutineStep) error
	DeleteFn     func(ctx context.Context, userID, stepID uuid.UUID) error

	// Data for default implementation
	Steps map[uuid.UUID]*domain.RoutineStep
}

// NewMockRoutineStore creates a new mock store with initialized defaults
func NewMockRoutineStore() *MockRoutineStore {
	return &MockRoutineStore{
		Steps: make(map[uuid.UUID]*domain.RoutineStep),
	}
}

// Create implements the RoutineStore interface
func (m *MockRoutineStore) Create(ctx context.Context, step *domain.RoutineStep) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, step)
	}

	m.Steps[step.ID] = step
	return nil
}

// ListByType implements the RoutineStore interface
func (m *MockRoutineStore) ListByType(
	ctx context.Context,
	userID uuid.UUID,
	routineType domain.RoutineType,
) ([]*domain.RoutineStep, error) {
	if m.ListByTypeFn != nil {
		return m.ListByTypeFn(ctx, userID, routineType)
	}

	var steps []*domain.RoutineStep
	for _, step := range m.Steps {
		if step.UserID == userID && step.Type == routineType {
			steps = append(steps, step)
		}
	}
	sort.Slice(steps, func(i, j int) bool { return steps[i].StepOrder < steps[j].StepOrder })
	return steps, nil
}

// Replace implements the RoutineStore interface
func (m *MockRoutineStore) Replace(
	ctx context.Context,
	userID uuid.UUID,
	routineType domain.RoutineType,
	steps []*domain.RoutineStep,
) error {
	if m.ReplaceFn != nil {
		return m.ReplaceFn(ctx, userID, routineType, steps)
	}

	for id, step := range m.Steps {
		if step.UserID == userID && step.Type == routineType {
			delete(m.Steps, id)
		}
	}
	for i, step := range steps {
		step.StepOrder = i + 1
		step.UserID = userID
		step.Type = routineType
		m.Steps[step.ID] = step
	}
	return nil
}

// Delete implements the RoutineStore interface
func (m *MockRoutineStore) Delete(ctx context.Context, userID, stepID uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, userID, stepID)
	}

	step, exists := m.Steps[stepID]
	if !exists || step.UserID != userID {
		return store.ErrRoutineStepNotFound
	}
	delete(m.Steps, stepID)
	return nil
}

// WithTx implements the RoutineStore interface for transaction support
func (m *MockRoutineStore) WithTx(tx *sql.Tx) store.RoutineStore {
	return m
}
