// Package ports declares the boundary contracts the filing core consumes.
// Implementations live in adapters (HTTP collaborators) and internal/draft
// (persistence); the core never depends on a concrete collaborator.
package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/sunsetmark/palyingwithedgar-sub001/internal/filing/models"
)

// LookupResult is the entity-lookup reply shape. On Valid=false the Message is
// surfaced to the user and no record fields are touched.
type LookupResult struct {
	Valid   bool
	Entity  *models.EntityInfo
	Message string
}

// EntityLookup resolves an identifier against the registrant database.
type EntityLookup interface {
	Lookup(ctx context.Context, cik string) (LookupResult, error)
}

// RemoteValidationResult carries server-side findings. They are merged with
// local engine output for display and never gate local state transitions.
type RemoteValidationResult struct {
	Valid  bool
	Errors []string
}

// RemoteValidator runs the server-side validation of an assembled filing.
type RemoteValidator interface {
	Validate(ctx context.Context, formType models.FormType, record models.FilingRecord) (RemoteValidationResult, error)
}

// Submitter hands the assembled filing off for submission. Only invoked after
// local validation reports zero findings.
type Submitter interface {
	Submit(ctx context.Context, formType models.FormType, record models.FilingRecord) error
}

// DraftStore persists filing records as opaque drafts. The core neither
// chooses the storage format nor versions the record.
type DraftStore interface {
	Save(ctx context.Context, record models.FilingRecord) (uuid.UUID, error)
	Load(ctx context.Context, id uuid.UUID) (models.FilingRecord, error)
}
