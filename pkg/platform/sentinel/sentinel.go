package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and collaborator adapters
// return these (optionally wrapped) so services can translate them into domain
// errors without string matching.
//
// These represent factual states about resources, not validation findings:
// - ErrNotFound: entity does not exist in store
// - ErrConflict: concurrent modification detected
// - ErrUnavailable: collaborator or resource temporarily unavailable
//
// For user-correctable input problems use pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
