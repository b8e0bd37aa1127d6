package handler

import (
	"fmt"
	"time"

	"github.com/sunsetmark/palyingwithedgar-sub001/internal/filing/models"
	dErrors "github.com/sunsetmark/palyingwithedgar-sub001/pkg/domain-errors"
)

// The handler is the enforcing input layer: field-level formats (dates,
// numeric ranges, code-table membership, conditional qualifiers) are checked
// here, at the point of entry, so the validation engine can stay focused on
// cross-field completeness.

type startFilingRequest struct {
	FormType string `json:"formType"`
	DraftID  string `json:"draftId,omitempty"`
}

type resetRequest struct {
	FormType string `json:"formType,omitempty"`
}

type goToStepRequest struct {
	Index int `json:"index"`
}

type remarksRequest struct {
	Remarks string `json:"remarks"`
}

type affirmationRequest struct {
	Value bool `json:"value"`
}

type lookupEntityRequest struct {
	CIK string `json:"cik"`
}

type loadDraftRequest struct {
	DraftID string `json:"draftId"`
}

func validateAmendmentPatch(patch models.AmendmentPatch, now time.Time) error {
	if patch.DateOfOriginalSubmission == nil || *patch.DateOfOriginalSubmission == "" {
		return nil
	}
	date, err := models.ParseDate(*patch.DateOfOriginalSubmission)
	if err != nil {
		return dErrors.New(dErrors.CodeInvalidInput,
			fmt.Sprintf("date of original submission must use the %s format", models.DateLayout))
	}
	if date.After(now) {
		return dErrors.New(dErrors.CodeInvalidInput, "date of original submission cannot be in the future")
	}
	return nil
}

func validateRelationship(rel *models.RelationshipFlags) error {
	if rel == nil {
		return nil
	}
	if rel.IsOfficer && rel.OfficerTitle == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "officer title is required when the officer relationship is selected")
	}
	if rel.IsOther && rel.OtherText == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "a description is required when the other relationship is selected")
	}
	return nil
}

func validateOwnership(own *models.OwnershipNature) error {
	if own == nil {
		return nil
	}
	if !own.IsDirect && own.NatureOfOwnership == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "nature of ownership is required for indirect ownership")
	}
	return nil
}

func validateOwner(owner models.ReportingOwner) error {
	return validateRelationship(&owner.Relationship)
}

func validateOwnerPatch(patch models.ReportingOwnerPatch) error {
	return validateRelationship(patch.Relationship)
}

func validateTransaction(tx models.Transaction) error {
	if tx.TransactionDate != "" {
		if _, err := models.ParseDate(tx.TransactionDate); err != nil {
			return dErrors.New(dErrors.CodeInvalidInput,
				fmt.Sprintf("transaction date must use the %s format", models.DateLayout))
		}
	}
	if tx.TransactionCode != "" && !models.IsValidTransactionCode(tx.TransactionCode) {
		return dErrors.New(dErrors.CodeInvalidInput,
			fmt.Sprintf("transaction code %q is not in the code table", tx.TransactionCode))
	}
	if tx.AcquiredDisposedCode != "" && !models.IsValidAcquiredDisposedCode(tx.AcquiredDisposedCode) {
		return dErrors.New(dErrors.CodeInvalidInput, `acquired/disposed code must be "A" or "D"`)
	}
	if tx.Shares < 0 || tx.SharesOwnedAfter < 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "share counts cannot be negative")
	}
	if tx.PricePerShare != nil && *tx.PricePerShare < 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "price per share cannot be negative")
	}
	return validateOwnership(&tx.Ownership)
}

func validateTransactionPatch(patch models.TransactionPatch) error {
	tx := models.Transaction{Ownership: models.OwnershipNature{IsDirect: true}}
	patch.Apply(&tx)
	if patch.Ownership == nil {
		// Nothing to check on ownership when the patch leaves it alone.
		tx.Ownership = models.OwnershipNature{IsDirect: true}
	}
	return validateTransaction(tx)
}

func validateHolding(h models.Holding) error {
	if h.Shares < 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "share counts cannot be negative")
	}
	return validateOwnership(&h.Ownership)
}

func validateHoldingPatch(patch models.HoldingPatch) error {
	h := models.Holding{Ownership: models.OwnershipNature{IsDirect: true}}
	patch.Apply(&h)
	if patch.Ownership == nil {
		h.Ownership = models.OwnershipNature{IsDirect: true}
	}
	return validateHolding(h)
}
