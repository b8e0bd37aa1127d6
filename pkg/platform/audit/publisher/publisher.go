// Package publisher fans audit events out to a store, either synchronously or
// through a buffered channel drained by a background worker for hot paths
// that must not block on persistence.
package publisher

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	audit "github.com/sunsetmark/palyingwithedgar-sub001/pkg/platform/audit"
	"github.com/sunsetmark/palyingwithedgar-sub001/pkg/platform/audit/worker"
)

// Publisher emits audit events. In sync mode Emit appends directly; in async
// mode Emit enqueues and a worker.Worker drains the buffer.
type Publisher struct {
	store  audit.Store
	logger *slog.Logger

	inbox  chan audit.Event
	cancel context.CancelFunc
	done   chan struct{}
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithAsyncBuffer switches the publisher to async mode with the given buffer
// size. When the buffer is full, Emit drops the event rather than block.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		p.inbox = make(chan audit.Event, size)
	}
}

// WithLogger attaches a logger for drop and persistence failures.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// NewPublisher constructs a publisher over the given store. In async mode it
// starts a worker that owns the drain loop.
func NewPublisher(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{store: store}
	for _, opt := range opts {
		opt(p)
	}
	if p.inbox != nil {
		ctx, cancel := context.WithCancel(context.Background())
		p.cancel = cancel
		p.done = make(chan struct{})
		w := worker.NewWorker(p.store, p.inbox, p.logger)
		go func() {
			defer close(p.done)
			_ = w.Run(ctx)
		}()
	}
	return p
}

// Emit records one event. Missing ID, timestamp, and category are filled in
// here so call sites stay minimal.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.Category == "" {
		event.Category = audit.AuditEvent(event.Action).Category()
	}

	if p.inbox == nil {
		return p.store.Append(ctx, event)
	}

	select {
	case p.inbox <- event:
		return nil
	default:
		if p.logger != nil {
			p.logger.Warn("audit buffer full, dropping event", "action", event.Action)
		}
		return nil
	}
}

// List returns the events recorded for a session.
func (p *Publisher) List(ctx context.Context, sessionID uuid.UUID) ([]audit.Event, error) {
	return p.store.ListBySession(ctx, sessionID)
}

// Close stops the worker. The worker flushes buffered events on its way out.
func (p *Publisher) Close() {
	if p.inbox == nil {
		return
	}
	p.cancel()
	<-p.done
}
