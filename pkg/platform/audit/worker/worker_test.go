package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "github.com/sunsetmark/palyingwithedgar-sub001/pkg/platform/audit"
	"github.com/sunsetmark/palyingwithedgar-sub001/pkg/platform/audit/store/memory"
)

func TestWorker_DrainsInbox(t *testing.T) {
	store := memory.NewInMemoryStore()
	inbox := make(chan audit.Event, 4)
	w := NewWorker(store, inbox, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	sessionID := uuid.New()
	inbox <- audit.Event{SessionID: sessionID, Action: string(audit.EventDraftSaved)}
	inbox <- audit.Event{SessionID: sessionID, Action: string(audit.EventDraftLoaded)}

	require.Eventually(t, func() bool {
		events, err := store.ListBySession(context.Background(), sessionID)
		return err == nil && len(events) == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	err := <-done
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWorker_FlushesBufferedEventsOnCancel(t *testing.T) {
	store := memory.NewInMemoryStore()
	inbox := make(chan audit.Event, 4)
	w := NewWorker(store, inbox, nil)

	sessionID := uuid.New()
	inbox <- audit.Event{SessionID: sessionID, Action: string(audit.EventFilingStarted)}
	inbox <- audit.Event{SessionID: sessionID, Action: string(audit.EventFilingSubmitted)}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := w.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	events, listErr := store.ListBySession(context.Background(), sessionID)
	require.NoError(t, listErr)
	assert.Len(t, events, 2)
}

type failingStore struct {
	appends atomic.Int32
}

func (s *failingStore) Append(context.Context, audit.Event) error {
	s.appends.Add(1)
	return errors.New("store down")
}

func (s *failingStore) ListBySession(context.Context, uuid.UUID) ([]audit.Event, error) {
	return nil, nil
}

func TestWorker_StoreFailuresAreNotFatal(t *testing.T) {
	store := &failingStore{}
	inbox := make(chan audit.Event, 4)
	w := NewWorker(store, inbox, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	inbox <- audit.Event{Action: string(audit.EventFilingStarted)}
	inbox <- audit.Event{Action: string(audit.EventFilingReset)}

	require.Eventually(t, func() bool {
		return store.appends.Load() == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
