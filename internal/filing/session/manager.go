package session

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/sunsetmark/palyingwithedgar-sub001/internal/filing/models"
	"github.com/sunsetmark/palyingwithedgar-sub001/pkg/platform/sentinel"
)

// Manager owns the live filing sessions. Each session wraps one Store together
// with the mutex that provides the external serialization the store requires,
// so concurrent sessions coexist without cross-talk and no store is ever a
// package-level singleton.
type Manager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*entry
}

type entry struct {
	mu    sync.Mutex
	store *Store
}

// NewManager constructs an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[uuid.UUID]*entry)}
}

// Create starts a new filing session with fresh defaults for formType and
// returns its ID.
func (m *Manager) Create(formType models.FormType) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.New()
	m.sessions[id] = &entry{store: New(formType)}
	return id
}

// Do runs fn against the session's store while holding the session mutex.
// All reads and mutations go through here so every call observes committed
// state.
func (m *Manager) Do(id uuid.UUID, fn func(*Store) error) error {
	m.mu.RLock()
	e, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("filing session %s: %w", id, sentinel.ErrNotFound)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.store)
}

// Delete discards a session. Deleting an unknown ID is a no-op.
func (m *Manager) Delete(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
