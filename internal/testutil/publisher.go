package testutil

import (
	"sync"

	"github.com/farmbook/farmbook-backend/internal/websocket"
	"github.com/google/uuid"
)

// MockEventPublisher records published events per owner for assertions
type MockEventPublisher struct {
	mu     sync.Mutex
	events map[uuid.UUID][]websocket.Event
}

// NewMockEventPublisher creates a new MockEventPublisher
func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{
		events: make(map[uuid.UUID][]websocket.Event),
	}
}

// Publish records the event
func (p *MockEventPublisher) Publish(ownerID uuid.UUID, event websocket.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events[ownerID] = append(p.events[ownerID], event)
}

// Events returns the events published for an owner, in order
func (p *MockEventPublisher) Events(ownerID uuid.UUID) []websocket.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]websocket.Event, len(p.events[ownerID]))
	copy(out, p.events[ownerID])
	return out
}

// EventTypes returns just the type strings of the owner's events
func (p *MockEventPublisher) EventTypes(ownerID uuid.UUID) []string {
	events := p.Events(ownerID)
	types := make([]string, len(events))
	for i, e := range events {
		types[i] = e.Type
	}
	return types
}
