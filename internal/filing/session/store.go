// Package session owns the mutable filing record for in-progress filings. A
// Store holds exactly one record and is the only sanctioned mutation surface;
// the Manager provides session addressing and the external mutual exclusion
// the store itself deliberately does not carry.
package session

import (
	"fmt"
	"regexp"

	dErrors "github.com/sunsetmark/palyingwithedgar-sub001/pkg/domain-errors"

	"github.com/sunsetmark/palyingwithedgar-sub001/internal/filing/formconfig"
	"github.com/sunsetmark/palyingwithedgar-sub001/internal/filing/models"
)

// footnoteIDPattern restricts footnote IDs to the F1..F99 scheme.
var footnoteIDPattern = regexp.MustCompile(`^F[1-9][0-9]?$`)

// Store holds one live filing record. Every operation is synchronous and
// atomic: a caller observes either the state before or after a call, never an
// intermediate. The store is single-writer and carries no locking; callers
// serialize access (see Manager).
type Store struct {
	record models.FilingRecord
}

// New constructs a store with fresh defaults for the given form type.
func New(formType models.FormType) *Store {
	return &Store{record: models.NewFilingRecord(formType)}
}

// Config resolves the configuration for the live form type. Re-resolved on
// every call so navigation bounds always track the current record.
func (s *Store) Config() formconfig.Configuration {
	return formconfig.Resolve(s.record.FormType)
}

// Snapshot returns a deep copy of the current record. Mutating the copy never
// affects the live record.
func (s *Store) Snapshot() models.FilingRecord {
	return cloneRecord(s.record)
}

// SetFormType replaces the entire record with fresh defaults for formType and
// resets the step cursor to zero.
func (s *Store) SetFormType(formType models.FormType) {
	s.record = models.NewFilingRecord(formType)
}

// Reset discards the record. An invalid (or empty) form type keeps the current
// one; the distinction from SetFormType is call-site intent only.
func (s *Store) Reset(formType models.FormType) {
	if !formType.IsValid() {
		formType = s.record.FormType
	}
	s.record = models.NewFilingRecord(formType)
}

// LoadDraft replaces the record wholesale with an externally supplied one,
// marking it as a draft in progress. No structural validation happens here;
// the validation engine is the sole gate. The step cursor is clamped so the
// cursor invariant holds even for drafts saved under a different step layout.
func (s *Store) LoadDraft(record models.FilingRecord) {
	record.Submission.IsSubmitting = false
	record.Submission.SubmissionError = ""
	record.IsDraft = true
	s.record = cloneRecord(record)

	if max := s.Config().StepCount() - 1; s.record.CurrentStepIndex > max {
		s.record.CurrentStepIndex = max
	}
	if s.record.CurrentStepIndex < 0 {
		s.record.CurrentStepIndex = 0
	}
}

// GoToStep moves the cursor to step i. Out-of-bounds targets are an
// integration error, surfaced distinctly rather than clamped.
func (s *Store) GoToStep(i int) error {
	if i < 0 || i >= s.Config().StepCount() {
		return dErrors.New(dErrors.CodeIndexOutOfRange,
			fmt.Sprintf("step index %d out of range for form type %s", i, s.record.FormType))
	}
	s.record.CurrentStepIndex = i
	return nil
}

// NextStep advances the cursor, saturating at the last step of the live
// configuration. Repeated calls at the boundary are no-ops.
func (s *Store) NextStep() {
	if s.record.CurrentStepIndex < s.Config().StepCount()-1 {
		s.record.CurrentStepIndex++
	}
}

// PrevStep moves the cursor back, saturating at step zero.
func (s *Store) PrevStep() {
	if s.record.CurrentStepIndex > 0 {
		s.record.CurrentStepIndex--
	}
}

// UpdateIssuer shallow-merges the patch into the issuer sub-record.
func (s *Store) UpdateIssuer(patch models.IssuerPatch) {
	patch.Apply(&s.record.Issuer)
}

// UpdateAmendment shallow-merges the patch into the amendment sub-record.
func (s *Store) UpdateAmendment(patch models.AmendmentPatch) {
	patch.Apply(&s.record.Amendment)
}

// AddReportingOwner appends an owner, enforcing the configured maximum.
func (s *Store) AddReportingOwner(owner models.ReportingOwner) error {
	cfg := s.Config()
	if len(s.record.ReportingOwners) >= cfg.MaxReportingOwners {
		return dErrors.New(dErrors.CodeLimitExceeded,
			fmt.Sprintf("a form %s filing allows at most %d reporting owners", s.record.FormType, cfg.MaxReportingOwners))
	}
	s.record.ReportingOwners = append(s.record.ReportingOwners, owner)
	return nil
}

// UpdateReportingOwner shallow-merges the patch into the owner at index.
func (s *Store) UpdateReportingOwner(index int, patch models.ReportingOwnerPatch) error {
	if index < 0 || index >= len(s.record.ReportingOwners) {
		return outOfRange("reporting owner", index, len(s.record.ReportingOwners))
	}
	patch.Apply(&s.record.ReportingOwners[index])
	return nil
}

// RemoveReportingOwner deletes the owner at index, shifting later indices down.
func (s *Store) RemoveReportingOwner(index int) error {
	if index < 0 || index >= len(s.record.ReportingOwners) {
		return outOfRange("reporting owner", index, len(s.record.ReportingOwners))
	}
	s.record.ReportingOwners = append(s.record.ReportingOwners[:index], s.record.ReportingOwners[index+1:]...)
	return nil
}

// AddTransaction appends a transaction to the collection for kind. The
// per-entry form-type qualifier is pre-filled from the configuration when the
// caller leaves it empty.
func (s *Store) AddTransaction(kind models.Kind, tx models.Transaction) error {
	cfg := s.Config()
	col := s.transactions(kind)
	if len(*col) >= cfg.MaxTransactions(kind) {
		return dErrors.New(dErrors.CodeLimitExceeded,
			fmt.Sprintf("a form %s filing allows at most %d %s transactions", s.record.FormType, cfg.MaxTransactions(kind), kind))
	}
	if tx.TransactionFormType == "" {
		tx.TransactionFormType = cfg.TransactionFormType
	}
	*col = append(*col, tx)
	return nil
}

// UpdateTransaction shallow-merges the patch into the entry at index.
func (s *Store) UpdateTransaction(kind models.Kind, index int, patch models.TransactionPatch) error {
	col := s.transactions(kind)
	if index < 0 || index >= len(*col) {
		return outOfRange(fmt.Sprintf("%s transaction", kind), index, len(*col))
	}
	patch.Apply(&(*col)[index])
	return nil
}

// RemoveTransaction deletes the entry at index, shifting later indices down.
func (s *Store) RemoveTransaction(kind models.Kind, index int) error {
	col := s.transactions(kind)
	if index < 0 || index >= len(*col) {
		return outOfRange(fmt.Sprintf("%s transaction", kind), index, len(*col))
	}
	*col = append((*col)[:index], (*col)[index+1:]...)
	return nil
}

// AddHolding appends a holding to the collection for kind.
func (s *Store) AddHolding(kind models.Kind, h models.Holding) error {
	cfg := s.Config()
	col := s.holdings(kind)
	if len(*col) >= cfg.MaxHoldings(kind) {
		return dErrors.New(dErrors.CodeLimitExceeded,
			fmt.Sprintf("a form %s filing allows at most %d %s holdings", s.record.FormType, cfg.MaxHoldings(kind), kind))
	}
	*col = append(*col, h)
	return nil
}

// UpdateHolding shallow-merges the patch into the entry at index.
func (s *Store) UpdateHolding(kind models.Kind, index int, patch models.HoldingPatch) error {
	col := s.holdings(kind)
	if index < 0 || index >= len(*col) {
		return outOfRange(fmt.Sprintf("%s holding", kind), index, len(*col))
	}
	patch.Apply(&(*col)[index])
	return nil
}

// RemoveHolding deletes the entry at index, shifting later indices down.
func (s *Store) RemoveHolding(kind models.Kind, index int) error {
	col := s.holdings(kind)
	if index < 0 || index >= len(*col) {
		return outOfRange(fmt.Sprintf("%s holding", kind), index, len(*col))
	}
	*col = append((*col)[:index], (*col)[index+1:]...)
	return nil
}

// AddFootnote appends a footnote, enforcing the ID pattern, uniqueness, and
// the configured maximum.
func (s *Store) AddFootnote(fn models.Footnote) error {
	cfg := s.Config()
	if len(s.record.Footnotes) >= cfg.MaxFootnotes {
		return dErrors.New(dErrors.CodeLimitExceeded,
			fmt.Sprintf("a filing allows at most %d footnotes", cfg.MaxFootnotes))
	}
	if !footnoteIDPattern.MatchString(fn.ID) {
		return dErrors.New(dErrors.CodeInvalidInput,
			fmt.Sprintf("footnote id %q must match F1..F99", fn.ID))
	}
	for _, existing := range s.record.Footnotes {
		if existing.ID == fn.ID {
			return dErrors.New(dErrors.CodeInvalidInput,
				fmt.Sprintf("footnote id %q is already in use", fn.ID))
		}
	}
	s.record.Footnotes = append(s.record.Footnotes, fn)
	return nil
}

// UpdateFootnote shallow-merges the patch into the footnote at index.
func (s *Store) UpdateFootnote(index int, patch models.FootnotePatch) error {
	if index < 0 || index >= len(s.record.Footnotes) {
		return outOfRange("footnote", index, len(s.record.Footnotes))
	}
	patch.Apply(&s.record.Footnotes[index])
	return nil
}

// RemoveFootnote deletes the footnote at index, shifting later indices down.
func (s *Store) RemoveFootnote(index int) error {
	if index < 0 || index >= len(s.record.Footnotes) {
		return outOfRange("footnote", index, len(s.record.Footnotes))
	}
	s.record.Footnotes = append(s.record.Footnotes[:index], s.record.Footnotes[index+1:]...)
	return nil
}

// SetAffirmation sets the affirmation checkbox.
func (s *Store) SetAffirmation(v bool) {
	s.record.Submission.NoSecuritiesOwned = v
}

// UpdateRemarks replaces the remarks text, enforcing the configured bound.
func (s *Store) UpdateRemarks(text string) error {
	cfg := s.Config()
	if len(text) > cfg.MaxRemarksLen {
		return dErrors.New(dErrors.CodeInvalidInput,
			fmt.Sprintf("remarks exceed the %d character limit", cfg.MaxRemarksLen))
	}
	s.record.Remarks = text
	return nil
}

// SetSubmitting toggles the transient submission-in-progress flag.
func (s *Store) SetSubmitting(v bool) {
	s.record.Submission.IsSubmitting = v
}

// SetSubmissionError records the last submission failure; an empty message
// clears it.
func (s *Store) SetSubmissionError(message string) {
	s.record.Submission.SubmissionError = message
}

func (s *Store) transactions(kind models.Kind) *[]models.Transaction {
	if kind == models.Derivative {
		return &s.record.DerivativeTransactions
	}
	return &s.record.NonDerivativeTransactions
}

func (s *Store) holdings(kind models.Kind) *[]models.Holding {
	if kind == models.Derivative {
		return &s.record.DerivativeHoldings
	}
	return &s.record.NonDerivativeHoldings
}

func outOfRange(what string, index, size int) error {
	return dErrors.New(dErrors.CodeIndexOutOfRange,
		fmt.Sprintf("%s index %d out of range (size %d)", what, index, size))
}

// cloneRecord deep-copies a filing record, including the one pointer field
// nested in transactions.
func cloneRecord(r models.FilingRecord) models.FilingRecord {
	out := r
	out.ReportingOwners = append([]models.ReportingOwner{}, r.ReportingOwners...)
	out.NonDerivativeTransactions = cloneTransactions(r.NonDerivativeTransactions)
	out.DerivativeTransactions = cloneTransactions(r.DerivativeTransactions)
	out.NonDerivativeHoldings = append([]models.Holding{}, r.NonDerivativeHoldings...)
	out.DerivativeHoldings = append([]models.Holding{}, r.DerivativeHoldings...)
	out.Footnotes = append([]models.Footnote{}, r.Footnotes...)
	return out
}

func cloneTransactions(txs []models.Transaction) []models.Transaction {
	out := append([]models.Transaction{}, txs...)
	for i := range out {
		if out[i].PricePerShare != nil {
			price := *out[i].PricePerShare
			out[i].PricePerShare = &price
		}
	}
	return out
}
