package models

// Patch types carry partial updates for shallow merges: nil fields are left
// untouched, non-nil fields replace the target field wholesale. Nested structs
// (addresses, relationship flags, ownership nature) replace as a unit, which is
// exactly the shallow-merge contract of the session store.

// IssuerPatch partially updates the issuer sub-record.
type IssuerPatch struct {
	CIK           *string  `json:"cik,omitempty"`
	Name          *string  `json:"name,omitempty"`
	TradingSymbol *string  `json:"tradingSymbol,omitempty"`
	Address       *Address `json:"address,omitempty"`
}

// Apply merges the patch into the issuer.
func (p IssuerPatch) Apply(issuer *Issuer) {
	if p.CIK != nil {
		issuer.CIK = *p.CIK
	}
	if p.Name != nil {
		issuer.Name = *p.Name
	}
	if p.TradingSymbol != nil {
		issuer.TradingSymbol = *p.TradingSymbol
	}
	if p.Address != nil {
		issuer.Address = *p.Address
	}
}

// AmendmentPatch partially updates the amendment sub-record.
type AmendmentPatch struct {
	DateOfOriginalSubmission *string `json:"dateOfOriginalSubmission,omitempty"`
}

// Apply merges the patch into the amendment info.
func (p AmendmentPatch) Apply(info *AmendmentInfo) {
	if p.DateOfOriginalSubmission != nil {
		info.DateOfOriginalSubmission = *p.DateOfOriginalSubmission
	}
}

// ReportingOwnerPatch partially updates one reporting owner.
type ReportingOwnerPatch struct {
	CIK          *string            `json:"cik,omitempty"`
	CCC          *string            `json:"ccc,omitempty"`
	Name         *string            `json:"name,omitempty"`
	Address      *Address           `json:"address,omitempty"`
	Relationship *RelationshipFlags `json:"relationship,omitempty"`
}

// Apply merges the patch into the owner.
func (p ReportingOwnerPatch) Apply(owner *ReportingOwner) {
	if p.CIK != nil {
		owner.CIK = *p.CIK
	}
	if p.CCC != nil {
		owner.CCC = *p.CCC
	}
	if p.Name != nil {
		owner.Name = *p.Name
	}
	if p.Address != nil {
		owner.Address = *p.Address
	}
	if p.Relationship != nil {
		owner.Relationship = *p.Relationship
	}
}

// TransactionPatch partially updates one transaction entry.
type TransactionPatch struct {
	SecurityTitle        *string          `json:"securityTitle,omitempty"`
	TransactionDate      *string          `json:"transactionDate,omitempty"`
	TransactionCode      *string          `json:"transactionCode,omitempty"`
	Shares               *float64         `json:"shares,omitempty"`
	PricePerShare        *float64         `json:"pricePerShare,omitempty"`
	AcquiredDisposedCode *string          `json:"acquiredDisposedCode,omitempty"`
	SharesOwnedAfter     *float64         `json:"sharesOwnedAfter,omitempty"`
	Ownership            *OwnershipNature `json:"ownership,omitempty"`
}

// Apply merges the patch into the transaction.
func (p TransactionPatch) Apply(tx *Transaction) {
	if p.SecurityTitle != nil {
		tx.SecurityTitle = *p.SecurityTitle
	}
	if p.TransactionDate != nil {
		tx.TransactionDate = *p.TransactionDate
	}
	if p.TransactionCode != nil {
		tx.TransactionCode = *p.TransactionCode
	}
	if p.Shares != nil {
		tx.Shares = *p.Shares
	}
	if p.PricePerShare != nil {
		price := *p.PricePerShare
		tx.PricePerShare = &price
	}
	if p.AcquiredDisposedCode != nil {
		tx.AcquiredDisposedCode = *p.AcquiredDisposedCode
	}
	if p.SharesOwnedAfter != nil {
		tx.SharesOwnedAfter = *p.SharesOwnedAfter
	}
	if p.Ownership != nil {
		tx.Ownership = *p.Ownership
	}
}

// HoldingPatch partially updates one holding entry.
type HoldingPatch struct {
	SecurityTitle *string          `json:"securityTitle,omitempty"`
	Shares        *float64         `json:"shares,omitempty"`
	Ownership     *OwnershipNature `json:"ownership,omitempty"`
}

// Apply merges the patch into the holding.
func (p HoldingPatch) Apply(h *Holding) {
	if p.SecurityTitle != nil {
		h.SecurityTitle = *p.SecurityTitle
	}
	if p.Shares != nil {
		h.Shares = *p.Shares
	}
	if p.Ownership != nil {
		h.Ownership = *p.Ownership
	}
}

// FootnotePatch partially updates one footnote. The ID is immutable once added;
// only the text can change.
type FootnotePatch struct {
	Text *string `json:"text,omitempty"`
}

// Apply merges the patch into the footnote.
func (p FootnotePatch) Apply(f *Footnote) {
	if p.Text != nil {
		f.Text = *p.Text
	}
}
