package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/sunsetmark/palyingwithedgar-sub001/internal/filing/models"
	"github.com/sunsetmark/palyingwithedgar-sub001/internal/filing/session"
	dErrors "github.com/sunsetmark/palyingwithedgar-sub001/pkg/domain-errors"
)

// guardSet issues request tokens for in-flight entity lookups. When a lookup
// is superseded by a newer one for the same target, the stale result is
// discarded here, at the collaborator boundary - the state store has no epoch
// mechanism and must not grow one.
type guardSet struct {
	mu     sync.Mutex
	latest map[string]uint64
}

func newGuardSet() *guardSet {
	return &guardSet{latest: make(map[string]uint64)}
}

func (g *guardSet) begin(key string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.latest[key]++
	return g.latest[key]
}

func (g *guardSet) stillCurrent(key string, token uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.latest[key] == token
}

func (g *guardSet) drop(sessionID uuid.UUID) {
	prefix := sessionID.String()
	g.mu.Lock()
	defer g.mu.Unlock()
	for key := range g.latest {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(g.latest, key)
		}
	}
}

// LookupOutcome reports what an entity lookup did. When the collaborator
// rejects the identifier, Message carries the user-facing reason and nothing
// is merged. When a newer lookup superseded this one, Applied is false and the
// record is untouched.
type LookupOutcome struct {
	Valid   bool               `json:"valid"`
	Applied bool               `json:"applied"`
	Message string             `json:"message,omitempty"`
	Entity  *models.EntityInfo `json:"entity,omitempty"`
}

// LookupIssuer resolves the issuer identifier and merges the returned name
// and address into the issuer sub-record via the ordinary update operation.
func (s *Service) LookupIssuer(ctx context.Context, id uuid.UUID, cik string) (LookupOutcome, error) {
	key := id.String() + "/issuer"
	return s.runLookup(ctx, id, key, cik, func(store *session.Store, entity *models.EntityInfo) error {
		store.UpdateIssuer(models.IssuerPatch{
			CIK:     &entity.CIK,
			Name:    &entity.Name,
			Address: &entity.Address,
		})
		return nil
	})
}

// LookupOwner resolves a reporting owner identifier and merges the result
// into the owner at index.
func (s *Service) LookupOwner(ctx context.Context, id uuid.UUID, index int, cik string) (LookupOutcome, error) {
	key := fmt.Sprintf("%s/owner/%d", id, index)
	return s.runLookup(ctx, id, key, cik, func(store *session.Store, entity *models.EntityInfo) error {
		return store.UpdateReportingOwner(index, models.ReportingOwnerPatch{
			CIK:     &entity.CIK,
			Name:    &entity.Name,
			Address: &entity.Address,
		})
	})
}

func (s *Service) runLookup(
	ctx context.Context,
	id uuid.UUID,
	key string,
	cik string,
	apply func(*session.Store, *models.EntityInfo) error,
) (LookupOutcome, error) {
	if s.lookup == nil {
		return LookupOutcome{}, dErrors.New(dErrors.CodeUnavailable, "entity lookup is not configured")
	}

	// Confirm the session exists before going remote.
	if err := s.do(id, func(*session.Store) error { return nil }); err != nil {
		return LookupOutcome{}, err
	}

	token := s.guards.begin(key)

	res, err := s.lookup.Lookup(ctx, cik)
	if err != nil {
		return LookupOutcome{}, dErrors.New(dErrors.CodeUnavailable, "entity lookup is unavailable")
	}

	if !res.Valid {
		return LookupOutcome{Valid: false, Message: res.Message}, nil
	}

	outcome := LookupOutcome{Valid: true, Entity: res.Entity}
	if !s.guards.stillCurrent(key, token) {
		s.logger.InfoContext(ctx, "discarding superseded lookup result", "key", key)
		return outcome, nil
	}

	if err := s.do(id, func(store *session.Store) error {
		// Re-check under the session lock: a newer lookup may have landed in
		// the window since the first check.
		if !s.guards.stillCurrent(key, token) {
			return nil
		}
		if err := apply(store, res.Entity); err != nil {
			return err
		}
		outcome.Applied = true
		return nil
	}); err != nil {
		return LookupOutcome{}, err
	}
	return outcome, nil
}
