// Package validate computes the complete set of local validation findings for
// a filing record under a resolved configuration. This is pure domain logic -
// no I/O, no side effects, and the same inputs always produce the same ordered
// output.
//
// Field-level formats (dates, numeric ranges, code-table membership) are
// enforced at the point of entry by the HTTP layer and are intentionally not
// re-checked here.
package validate

import (
	"fmt"

	"github.com/sunsetmark/palyingwithedgar-sub001/internal/filing/formconfig"
	"github.com/sunsetmark/palyingwithedgar-sub001/internal/filing/models"
)

// Finding wording is fixed: tests and review screens rely on stable strings.
const (
	FindingIssuerCIKRequired     = "Issuer CIK is required."
	FindingIssuerNameRequired    = "Issuer name is required."
	FindingOwnerRequired         = "At least one reporting owner is required."
	FindingEntryRequired         = "At least one transaction or holding entry is required."
	FindingHoldingRequired       = "An initial statement of beneficial ownership must report at least one holding."
	FindingAmendmentDateRequired = "Date of original submission is required for an amendment."
	findingOwnerCIKFormat        = "Reporting owner %d: CIK is required."
	findingOwnerCCCFormat        = "Reporting owner %d: CCC is required."
	findingOwnerNameFormat       = "Reporting owner %d: name is required."
	findingOwnerRelationshipFmt  = "Reporting owner %d: at least one relationship to the issuer must be selected."
)

// OwnerCIKRequired returns the per-owner CIK finding for a 1-based position.
func OwnerCIKRequired(pos int) string { return fmt.Sprintf(findingOwnerCIKFormat, pos) }

// OwnerCCCRequired returns the per-owner CCC finding for a 1-based position.
func OwnerCCCRequired(pos int) string { return fmt.Sprintf(findingOwnerCCCFormat, pos) }

// OwnerNameRequired returns the per-owner name finding for a 1-based position.
func OwnerNameRequired(pos int) string { return fmt.Sprintf(findingOwnerNameFormat, pos) }

// OwnerRelationshipRequired returns the per-owner relationship finding for a
// 1-based position.
func OwnerRelationshipRequired(pos int) string { return fmt.Sprintf(findingOwnerRelationshipFmt, pos) }

// Check evaluates the full rule set against the record and accumulates
// findings in a fixed order:
//
//  1. issuer identity
//  2. reporting owner presence and per-owner completeness
//  3. transaction-or-holding presence (transaction forms only)
//  4. holdings presence (initial statement family only)
//  5. amendment date presence (amendment variants only)
//
// Every rule is evaluated unconditionally; nothing fails fast, so the caller
// always sees the complete picture.
func Check(record models.FilingRecord, cfg formconfig.Configuration) []string {
	findings := []string{}

	if record.Issuer.CIK == "" {
		findings = append(findings, FindingIssuerCIKRequired)
	}
	if record.Issuer.Name == "" {
		findings = append(findings, FindingIssuerNameRequired)
	}

	if len(record.ReportingOwners) == 0 {
		findings = append(findings, FindingOwnerRequired)
	}
	for i, owner := range record.ReportingOwners {
		pos := i + 1
		if owner.CIK == "" {
			findings = append(findings, OwnerCIKRequired(pos))
		}
		if owner.CCC == "" {
			findings = append(findings, OwnerCCCRequired(pos))
		}
		if owner.Name == "" {
			findings = append(findings, OwnerNameRequired(pos))
		}
		if !owner.Relationship.Any() {
			findings = append(findings, OwnerRelationshipRequired(pos))
		}
	}

	if cfg.ShowTransactions && totalEntries(record) == 0 {
		findings = append(findings, FindingEntryRequired)
	}

	// Initial statements report positions, not movements: a placeholder holding
	// satisfies this rule, so share counts are not inspected.
	if formconfig.BaseType(record.FormType) == models.FormType3 && totalHoldings(record) == 0 {
		findings = append(findings, FindingHoldingRequired)
	}

	if cfg.IsAmendment && record.Amendment.DateOfOriginalSubmission == "" {
		findings = append(findings, FindingAmendmentDateRequired)
	}

	return findings
}

func totalHoldings(record models.FilingRecord) int {
	return len(record.NonDerivativeHoldings) + len(record.DerivativeHoldings)
}

func totalEntries(record models.FilingRecord) int {
	return len(record.NonDerivativeTransactions) + len(record.DerivativeTransactions) + totalHoldings(record)
}
