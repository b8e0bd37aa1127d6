// Package formconfig resolves the per-form-type configuration that drives the
// session store's shape, the step sequence, and the validation engine. Pure
// lookup: nothing here mutates, and Resolve is total over all inputs.
package formconfig

import (
	"strings"

	"github.com/sunsetmark/palyingwithedgar-sub001/internal/filing/models"
)

// SectionKind keys the document section a wizard step shows. Front ends switch
// on this enum, never on raw form-type strings.
type SectionKind string

const (
	SectionIssuer       SectionKind = "issuer"
	SectionAmendment    SectionKind = "amendment"
	SectionOwners       SectionKind = "reporting_owners"
	SectionTransactions SectionKind = "transactions"
	SectionHoldings     SectionKind = "holdings"
	SectionFootnotes    SectionKind = "footnotes"
	SectionReview       SectionKind = "review"
)

// Step is one entry in the ordered data-entry sequence for a form type.
type Step struct {
	ID      string      `json:"id"`
	Label   string      `json:"label"`
	Section SectionKind `json:"section"`
}

// Configuration is the fully resolved, strongly typed settings bundle for one
// form type. Downstream code branches on these fields only.
type Configuration struct {
	FormType    models.FormType
	Steps       []Step
	IsAmendment bool

	// Section visibility.
	ShowTransactions bool
	ShowHoldings     bool
	ShowLateHoldings bool
	ShowAffirmation  bool

	// Cardinality limits.
	MaxReportingOwners           int
	MaxNonDerivativeTransactions int
	MaxDerivativeTransactions    int
	MaxNonDerivativeHoldings     int
	MaxDerivativeHoldings        int
	MaxFootnotes                 int
	MaxRemarksLen                int

	// TransactionFormType pre-fills the per-entry form-type qualifier on new
	// transactions (empty for the initial statement, which has no transactions).
	TransactionFormType string
}

// StepCount returns the number of steps for the form type.
func (c Configuration) StepCount() int {
	return len(c.Steps)
}

// MaxTransactions returns the transaction limit for the given kind.
func (c Configuration) MaxTransactions(kind models.Kind) int {
	if kind == models.Derivative {
		return c.MaxDerivativeTransactions
	}
	return c.MaxNonDerivativeTransactions
}

// MaxHoldings returns the holding limit for the given kind.
func (c Configuration) MaxHoldings(kind models.Kind) int {
	if kind == models.Derivative {
		return c.MaxDerivativeHoldings
	}
	return c.MaxNonDerivativeHoldings
}

const amendmentSuffix = "/A"

// IsAmendmentType reports whether the form type denotes an amendment variant.
// Suffix test only, so callers can toggle amendment behavior without a full
// configuration lookup.
func IsAmendmentType(formType models.FormType) bool {
	return strings.HasSuffix(string(formType), amendmentSuffix)
}

// BaseType strips the amendment suffix, mapping "4/A" to "4" and leaving base
// types unchanged.
func BaseType(formType models.FormType) models.FormType {
	return models.FormType(strings.TrimSuffix(string(formType), amendmentSuffix))
}

// Resolve returns the configuration for the given form type. Total function:
// anything outside the known enumeration resolves to the default form type
// (the initial statement) so callers never branch on lookup failure.
func Resolve(formType models.FormType) Configuration {
	if !formType.IsValid() {
		formType = models.FormType3
	}

	cfg := Configuration{
		FormType:                 formType,
		IsAmendment:              IsAmendmentType(formType),
		ShowHoldings:             true,
		MaxReportingOwners:       10,
		MaxNonDerivativeHoldings: 30,
		MaxDerivativeHoldings:    30,
		MaxFootnotes:             99,
		MaxRemarksLen:            2000,
	}

	switch BaseType(formType) {
	case models.FormType3:
		// Initial statement: holdings only, no transaction tables.
	case models.FormType4:
		cfg.ShowTransactions = true
		cfg.MaxNonDerivativeTransactions = 30
		cfg.MaxDerivativeTransactions = 30
		cfg.TransactionFormType = "4"
	case models.FormType5:
		cfg.ShowTransactions = true
		cfg.ShowLateHoldings = true
		cfg.ShowAffirmation = true
		cfg.MaxNonDerivativeTransactions = 30
		cfg.MaxDerivativeTransactions = 30
		cfg.TransactionFormType = "5"
	}

	cfg.Steps = buildSteps(cfg)
	return cfg
}

// buildSteps assembles the ordered step list from the resolved flags. Amendment
// variants get a dedicated amendment step right after the issuer step.
func buildSteps(cfg Configuration) []Step {
	steps := []Step{
		{ID: "issuer", Label: "Issuer Information", Section: SectionIssuer},
	}
	if cfg.IsAmendment {
		steps = append(steps, Step{ID: "amendment", Label: "Amendment Details", Section: SectionAmendment})
	}
	steps = append(steps, Step{ID: "owners", Label: "Reporting Owners", Section: SectionOwners})
	if cfg.ShowTransactions {
		steps = append(steps, Step{ID: "transactions", Label: "Transactions", Section: SectionTransactions})
	}
	if cfg.ShowHoldings {
		steps = append(steps, Step{ID: "holdings", Label: "Holdings", Section: SectionHoldings})
	}
	steps = append(steps,
		Step{ID: "footnotes", Label: "Footnotes and Remarks", Section: SectionFootnotes},
		Step{ID: "review", Label: "Review and Submit", Section: SectionReview},
	)
	return steps
}
