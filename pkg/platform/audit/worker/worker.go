// Package worker drains audit events from a channel into a store. The
// publisher's async mode runs one of these; it can also be run standalone
// against any inbox that feeds the same store.
package worker

import (
	"context"
	"log/slog"

	audit "github.com/sunsetmark/palyingwithedgar-sub001/pkg/platform/audit"
)

// Worker consumes audit events from a channel and persists them. Store
// failures are logged and the event skipped; audit persistence must never
// take the event source down.
type Worker struct {
	store  audit.Store
	inbox  <-chan audit.Event
	logger *slog.Logger
}

// NewWorker constructs a worker over the given store and inbox. A nil logger
// drops failure reports.
func NewWorker(store audit.Store, inbox <-chan audit.Event, logger *slog.Logger) *Worker {
	return &Worker{store: store, inbox: inbox, logger: logger}
}

// Run processes events until the context is canceled, then drains whatever
// is still buffered in the inbox before returning.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.Flush()
			return ctx.Err()
		case event := <-w.inbox:
			w.append(event)
		}
	}
}

// Flush synchronously persists every event currently buffered in the inbox.
func (w *Worker) Flush() {
	for {
		select {
		case event := <-w.inbox:
			w.append(event)
		default:
			return
		}
	}
}

func (w *Worker) append(event audit.Event) {
	if err := w.store.Append(context.Background(), event); err != nil && w.logger != nil {
		w.logger.Error("failed to persist audit event", "action", event.Action, "error", err)
	}
}
