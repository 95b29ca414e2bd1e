package mocks

import (
	"context"
	"sync"
)

// PublishedEvent records one call to MockPublisher.Publish.
type PublishedEvent struct {
	RoutingKey string
	Payload    any
}

// MockPublisher implements the reminder.Publisher interface for testing
type MockPublisher struct {
	// PublishFn allows test cases to mock the Publish behavior
	PublishFn func(ctx context.Context, routingKey string, payload any) error

	// Err is returned by the default implementation
	Err error

	mu     sync.Mutex
	Events []PublishedEvent
}

// Publish records the event and returns the configured error.
func (m *MockPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	if m.PublishFn != nil {
		return m.PublishFn(ctx, routingKey, payload)
	}

	m.mu.Lock()
	m.Events = append(m.Events, PublishedEvent{RoutingKey: routingKey, Payload: payload})
	m.mu.Unlock()
	return m.Err
}

// Published returns a copy of the recorded events.
func (m *MockPublisher) Published() []PublishedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]PublishedEvent, len(m.Events))
	copy(out, m.Events)
	return out
}
