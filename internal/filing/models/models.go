// Package models holds the filing record and its sub-records. The record is a
// plain value graph: it carries no behavior beyond small invariant helpers, so
// the session store and the validation engine stay the only places that decide
// what a legal mutation or a complete filing looks like.
package models

import "time"

// FormType identifies one of the six ownership-disclosure document categories:
// three base forms and their amendment counterparts.
type FormType string

const (
	FormType3  FormType = "3"
	FormType3A FormType = "3/A"
	FormType4  FormType = "4"
	FormType4A FormType = "4/A"
	FormType5  FormType = "5"
	FormType5A FormType = "5/A"
)

// IsValid checks if the form type is one of the supported enum values.
func (t FormType) IsValid() bool {
	switch t {
	case FormType3, FormType3A, FormType4, FormType4A, FormType5, FormType5A:
		return true
	}
	return false
}

// String returns the string representation.
func (t FormType) String() string {
	return string(t)
}

// Kind selects one of the two table variants a transaction or holding belongs
// to. A closed enum keeps collection dispatch resolvable at compile time.
type Kind int

const (
	NonDerivative Kind = iota
	Derivative
)

// IsValid checks if the kind is one of the two table variants.
func (k Kind) IsValid() bool {
	return k == NonDerivative || k == Derivative
}

// String returns the wire label for the kind.
func (k Kind) String() string {
	if k == Derivative {
		return "derivative"
	}
	return "nonDerivative"
}

// ParseKind maps a wire label onto the closed Kind enum.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "nonDerivative":
		return NonDerivative, true
	case "derivative":
		return Derivative, true
	}
	return NonDerivative, false
}

// Address is a structured postal address as filed.
type Address struct {
	Street1 string `json:"street1"`
	Street2 string `json:"street2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

// Issuer identifies the company whose securities the filing reports.
type Issuer struct {
	CIK           string  `json:"cik"`
	Name          string  `json:"name"`
	TradingSymbol string  `json:"tradingSymbol"`
	Address       Address `json:"address"`
}

// AmendmentInfo is populated only for amendment form types.
type AmendmentInfo struct {
	DateOfOriginalSubmission string `json:"dateOfOriginalSubmission"`
}

// RelationshipFlags records how a reporting owner relates to the issuer. The
// OfficerTitle and OtherText qualifiers are required by the entry layer exactly
// when the corresponding flag is set.
type RelationshipFlags struct {
	IsDirector        bool   `json:"isDirector"`
	IsOfficer         bool   `json:"isOfficer"`
	IsTenPercentOwner bool   `json:"isTenPercentOwner"`
	IsOther           bool   `json:"isOther"`
	OfficerTitle      string `json:"officerTitle,omitempty"`
	OtherText         string `json:"otherText,omitempty"`
}

// Any reports whether at least one relationship flag is set.
func (r RelationshipFlags) Any() bool {
	return r.IsDirector || r.IsOfficer || r.IsTenPercentOwner || r.IsOther
}

// ReportingOwner is one person or entity required to disclose ownership.
type ReportingOwner struct {
	CIK          string            `json:"cik"`
	CCC          string            `json:"ccc"`
	Name         string            `json:"name"`
	Address      Address           `json:"address"`
	Relationship RelationshipFlags `json:"relationship"`
}

// OwnershipNature distinguishes direct from indirect beneficial ownership. The
// entry layer requires NatureOfOwnership text exactly when ownership is indirect.
type OwnershipNature struct {
	IsDirect          bool   `json:"isDirect"`
	NatureOfOwnership string `json:"natureOfOwnership,omitempty"`
}

// Transaction is one reported change in ownership position.
type Transaction struct {
	SecurityTitle        string          `json:"securityTitle"`
	TransactionDate      string          `json:"transactionDate"`
	TransactionCode      string          `json:"transactionCode"`
	TransactionFormType  string          `json:"transactionFormType,omitempty"`
	Shares               float64         `json:"shares"`
	PricePerShare        *float64        `json:"pricePerShare,omitempty"`
	AcquiredDisposedCode string          `json:"acquiredDisposedCode"`
	SharesOwnedAfter     float64         `json:"sharesOwnedAfter"`
	Ownership            OwnershipNature `json:"ownership"`
}

// Holding is one point-in-time ownership position.
type Holding struct {
	SecurityTitle string          `json:"securityTitle"`
	Shares        float64         `json:"shares"`
	Ownership     OwnershipNature `json:"ownership"`
}

// Footnote is a referenced annotation; IDs follow the F1..F99 scheme and must
// be unique within a filing.
type Footnote struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// SubmissionFlags carries the affirmation checkbox plus session-transient
// submission state. The transient fields are not part of the persisted filing
// content and are zeroed on draft round-trips.
type SubmissionFlags struct {
	NoSecuritiesOwned bool   `json:"noSecuritiesOwned"`
	IsSubmitting      bool   `json:"-"`
	SubmissionError   string `json:"-"`
}

// FilingRecord is the root entity: one live instance per in-progress filing.
// Indexed collections are addressed purely by position; removing an element
// shifts subsequent indices.
type FilingRecord struct {
	FormType                  FormType         `json:"formType"`
	CurrentStepIndex          int              `json:"currentStepIndex"`
	Amendment                 AmendmentInfo    `json:"amendment"`
	Issuer                    Issuer           `json:"issuer"`
	ReportingOwners           []ReportingOwner `json:"reportingOwners"`
	NonDerivativeTransactions []Transaction    `json:"nonDerivativeTransactions"`
	DerivativeTransactions    []Transaction    `json:"derivativeTransactions"`
	NonDerivativeHoldings     []Holding        `json:"nonDerivativeHoldings"`
	DerivativeHoldings        []Holding        `json:"derivativeHoldings"`
	Footnotes                 []Footnote       `json:"footnotes"`
	Remarks                   string           `json:"remarks"`
	Submission                SubmissionFlags  `json:"submission"`
	IsDraft                   bool             `json:"-"`
}

// NewFilingRecord returns fresh defaults for the given form type with the step
// cursor at zero.
func NewFilingRecord(formType FormType) FilingRecord {
	return FilingRecord{
		FormType:                  formType,
		ReportingOwners:           []ReportingOwner{},
		NonDerivativeTransactions: []Transaction{},
		DerivativeTransactions:    []Transaction{},
		NonDerivativeHoldings:     []Holding{},
		DerivativeHoldings:        []Holding{},
		Footnotes:                 []Footnote{},
	}
}

// Transactions returns the collection for the given kind. Callers hold the
// returned slice only transiently; mutations go through the session store.
func (r *FilingRecord) Transactions(kind Kind) []Transaction {
	if kind == Derivative {
		return r.DerivativeTransactions
	}
	return r.NonDerivativeTransactions
}

// Holdings returns the holding collection for the given kind.
func (r *FilingRecord) Holdings(kind Kind) []Holding {
	if kind == Derivative {
		return r.DerivativeHoldings
	}
	return r.NonDerivativeHoldings
}

// EntityInfo is the name/address payload returned by the entity lookup
// collaborator and merged into issuer or owner records.
type EntityInfo struct {
	CIK     string  `json:"cik"`
	Name    string  `json:"name"`
	Address Address `json:"address"`
}

// DateLayout is the wire format for filing dates.
const DateLayout = "2006-01-02"

// ParseDate parses a filing date in the wire format.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
