// Package memory is the in-memory audit store for tests and single-node
// deployments without Kafka.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	audit "github.com/sunsetmark/palyingwithedgar-sub001/pkg/platform/audit"
)

// InMemoryStore keeps events per session, append-only.
type InMemoryStore struct {
	mu     sync.RWMutex
	events map[uuid.UUID][]audit.Event
}

// NewInMemoryStore constructs an empty store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{events: make(map[uuid.UUID][]audit.Event)}
}

// Append records an event.
func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.SessionID] = append(s.events[event.SessionID], event)
	return nil
}

// ListBySession returns a copy of the events recorded for a session.
func (s *InMemoryStore) ListBySession(_ context.Context, sessionID uuid.UUID) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Event{}, s.events[sessionID]...), nil
}
