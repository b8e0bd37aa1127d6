// Package draft provides DraftStore implementations. Drafts are opaque
// snapshots of a filing record keyed by a generated ID; the stores never
// interpret the record beyond serializing it.
package draft

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/sunsetmark/palyingwithedgar-sub001/internal/filing/models"
	"github.com/sunsetmark/palyingwithedgar-sub001/pkg/platform/sentinel"
)

// InMemoryStore keeps drafts in a map for tests and development.
type InMemoryStore struct {
	mu     sync.RWMutex
	drafts map[uuid.UUID]models.FilingRecord
}

// NewInMemoryStore constructs an empty in-memory draft store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{drafts: make(map[uuid.UUID]models.FilingRecord)}
}

// Save stores a snapshot and returns its draft ID.
func (s *InMemoryStore) Save(_ context.Context, record models.FilingRecord) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.drafts[id] = record
	return id, nil
}

// Load returns the stored snapshot for id.
func (s *InMemoryStore) Load(_ context.Context, id uuid.UUID) (models.FilingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if record, ok := s.drafts[id]; ok {
		return record, nil
	}
	return models.FilingRecord{}, fmt.Errorf("draft %s: %w", id, sentinel.ErrNotFound)
}
