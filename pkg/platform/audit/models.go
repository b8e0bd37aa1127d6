// Package audit captures filing lifecycle events for compliance and
// operational visibility. Events are emitted from domain services and fanned
// out to stores and sinks; keep them transport-agnostic.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventCategory classifies audit events by their primary purpose. This enables
// different retention policies, storage backends, and routing.
type EventCategory string

const (
	// CategoryCompliance covers events with regulatory significance and long
	// retention: submissions and their failures.
	CategoryCompliance EventCategory = "compliance"

	// CategoryOperations covers events useful for debugging and operational
	// visibility: session and draft lifecycle.
	CategoryOperations EventCategory = "operations"
)

// AuditEvent enumerates the actions the filing core emits.
type AuditEvent string

const (
	EventFilingStarted    AuditEvent = "filing_started"
	EventFilingReset      AuditEvent = "filing_reset"
	EventDraftSaved       AuditEvent = "draft_saved"
	EventDraftLoaded      AuditEvent = "draft_loaded"
	EventFilingSubmitted  AuditEvent = "filing_submitted"
	EventSubmissionFailed AuditEvent = "submission_failed"
)

// eventCategories is the source of truth for category routing.
var eventCategories = map[AuditEvent]EventCategory{
	EventFilingStarted:    CategoryOperations,
	EventFilingReset:      CategoryOperations,
	EventDraftSaved:       CategoryOperations,
	EventDraftLoaded:      CategoryOperations,
	EventFilingSubmitted:  CategoryCompliance,
	EventSubmissionFailed: CategoryCompliance,
}

// Category returns the routing category for the event, defaulting to
// operations for unknown actions.
func (e AuditEvent) Category() EventCategory {
	if c, ok := eventCategories[e]; ok {
		return c
	}
	return CategoryOperations
}

// Event is one recorded filing action.
type Event struct {
	ID        uuid.UUID     `json:"id"`
	Category  EventCategory `json:"category"`
	Timestamp time.Time     `json:"timestamp"`
	SessionID uuid.UUID     `json:"session_id"`
	FormType  string        `json:"form_type"`
	Action    string        `json:"action"`
	Reason    string        `json:"reason,omitempty"`
	RequestID string        `json:"request_id,omitempty"`
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]Event, error)
}
