package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/nexotime/nexotime/internal/domain"
	"github.com/nexotime/nexotime/internal/store"
)

// MockReminderStore implements store.ReminderStore for testing
type MockReminderStore struct {
	// Function fields for customizable behavior
	CreateFn      func(ctx context.Context, reminder *domain.Reminder) error
	ListForUserFn func(ctx context.Context, userID uuid.UUID) ([]*domain.Reminder, error)
	DeleteFn      func(ctx context.Context, userID, reminderID uuid.UUID) error
	ListDueFn     func(ctx context.Context, timeOfDay string) ([]*store.DueReminder, error)

	// Data for default implementation
	Reminders map[uuid.UUID]*domain.Reminder

	// Due reminders returned by the default ListDue
	Due []*store.DueReminder
}

// NewMockReminderStore creates a new mock store with initialized defaults
func NewMockReminderStore() *MockReminderStore {
	return &MockReminderStore{
		Reminders: make(map[uuid.UUID]*domain.Reminder),
	}
}

// Create implements the ReminderStore interface
func (m *MockReminderStore) Create(ctx context.Context, reminder *domain.Reminder) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, reminder)
	}

	m.Reminders[reminder.ID] = reminder
	return nil
}

// ListForUser implements the ReminderStore interface
func (m *MockReminderStore) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Reminder, error) {
	if m.ListForUserFn != nil {
		return m.ListForUserFn(ctx, userID)
	}

	var reminders []*domain.Reminder
	for _, reminder := range m.Reminders {
		if reminder.UserID == userID {
			reminders = append(reminders, reminder)
		}
	}
	return reminders, nil
}

// Delete implements the ReminderStore interface
func (m *MockReminderStore) Delete(ctx context.Context, userID, reminderID uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, userID, reminderID)
	}

	reminder, exists := m.Reminders[reminderID]
	if !exists || reminder.UserID != userID {
		return store.ErrReminderNotFound
	}
	delete(m.Reminders, reminderID)
	return nil
}

// ListDue implements the ReminderStore interface
func (m *MockReminderStore) ListDue(ctx context.Context, timeOfDay string) ([]*store.DueReminder, error) {
	if m.ListDueFn != nil {
		return m.ListDueFn(ctx, timeOfDay)
	}

	var due []*store.DueReminder
	for _, d := range m.Due {
		if d.Reminder.TimeOfDay == timeOfDay && d.Reminder.Active {
			due = append(due, d)
		}
	}
	return due, nil
}

// WithTx implements the ReminderStore interface for transaction support
func (m *MockReminderStore) WithTx(tx *sql.Tx) store.ReminderStore {
	return m
}
