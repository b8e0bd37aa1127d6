package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunsetmark/palyingwithedgar-sub001/internal/filing/formconfig"
	"github.com/sunsetmark/palyingwithedgar-sub001/internal/filing/models"
)

func completeOwner() models.ReportingOwner {
	return models.ReportingOwner{
		CIK:  "0001234567",
		CCC:  "secret@1",
		Name: "Jordan Filer",
		Relationship: models.RelationshipFlags{
			IsDirector: true,
		},
	}
}

func completeRecord(formType models.FormType) models.FilingRecord {
	record := models.NewFilingRecord(formType)
	record.Issuer = models.Issuer{CIK: "0000320193", Name: "Example Corp"}
	record.ReportingOwners = append(record.ReportingOwners, completeOwner())
	record.NonDerivativeHoldings = append(record.NonDerivativeHoldings, models.Holding{
		SecurityTitle: "Common Stock",
		Shares:        100,
		Ownership:     models.OwnershipNature{IsDirect: true},
	})
	if formconfig.IsAmendmentType(formType) {
		record.Amendment.DateOfOriginalSubmission = "2026-01-15"
	}
	return record
}

func check(record models.FilingRecord) []string {
	return Check(record, formconfig.Resolve(record.FormType))
}

func TestCheck_CompleteRecordHasNoFindings(t *testing.T) {
	for _, formType := range []models.FormType{
		models.FormType3, models.FormType3A,
		models.FormType4, models.FormType4A,
		models.FormType5, models.FormType5A,
	} {
		t.Run(formType.String(), func(t *testing.T) {
			assert.Empty(t, check(completeRecord(formType)))
		})
	}
}

func TestCheck_EmptyRecordAccumulatesEverything(t *testing.T) {
	record := models.NewFilingRecord(models.FormType3)

	findings := check(record)

	// Every rule fires; nothing fails fast.
	assert.Equal(t, []string{
		FindingIssuerCIKRequired,
		FindingIssuerNameRequired,
		FindingOwnerRequired,
		FindingHoldingRequired,
	}, findings)
}

func TestCheck_IssuerIdentity(t *testing.T) {
	record := completeRecord(models.FormType3)
	record.Issuer.CIK = ""

	findings := check(record)

	require.Len(t, findings, 1)
	assert.Equal(t, FindingIssuerCIKRequired, findings[0])
}

func TestCheck_PerOwnerFindingsUseOneBasedPositions(t *testing.T) {
	record := completeRecord(models.FormType3)
	record.ReportingOwners = append(record.ReportingOwners, models.ReportingOwner{})

	findings := check(record)

	assert.Equal(t, []string{
		OwnerCIKRequired(2),
		OwnerCCCRequired(2),
		OwnerNameRequired(2),
		OwnerRelationshipRequired(2),
	}, findings)
}

func TestCheck_OwnerRelationshipSatisfiedByAnyFlag(t *testing.T) {
	record := completeRecord(models.FormType3)
	record.ReportingOwners[0].Relationship = models.RelationshipFlags{IsTenPercentOwner: true}

	assert.Empty(t, check(record))
}

func TestCheck_Form4RequiresAtLeastOneEntry(t *testing.T) {
	record := completeRecord(models.FormType4)
	record.NonDerivativeHoldings = nil

	findings := check(record)

	require.Len(t, findings, 1)
	assert.Equal(t, FindingEntryRequired, findings[0])
}

func TestCheck_Form4TransactionSatisfiesEntryRule(t *testing.T) {
	record := completeRecord(models.FormType4)
	record.NonDerivativeHoldings = nil
	record.DerivativeTransactions = append(record.DerivativeTransactions, models.Transaction{
		SecurityTitle: "Stock Option",
	})

	assert.Empty(t, check(record))
}

func TestCheck_Form3RequiresAHolding(t *testing.T) {
	record := completeRecord(models.FormType3)
	record.NonDerivativeHoldings = nil

	findings := check(record)

	require.Len(t, findings, 1)
	assert.Equal(t, FindingHoldingRequired, findings[0])
}

func TestCheck_Form3PlaceholderHoldingSatisfiesRule(t *testing.T) {
	// Share counts are not inspected: a zero-share placeholder counts.
	record := completeRecord(models.FormType3)
	record.NonDerivativeHoldings = []models.Holding{{SecurityTitle: "Common Stock"}}

	assert.Empty(t, check(record))
}

func TestCheck_Form3AHoldingRuleAppliesToAmendment(t *testing.T) {
	record := completeRecord(models.FormType3A)
	record.NonDerivativeHoldings = nil

	findings := check(record)

	require.Len(t, findings, 1)
	assert.Equal(t, FindingHoldingRequired, findings[0])
}

func TestCheck_AmendmentDateRequired(t *testing.T) {
	record := completeRecord(models.FormType4A)
	record.Amendment.DateOfOriginalSubmission = ""

	findings := check(record)

	require.Len(t, findings, 1)
	assert.Equal(t, FindingAmendmentDateRequired, findings[0])
}

func TestCheck_BaseTypeNeverReportsAmendmentFinding(t *testing.T) {
	record := completeRecord(models.FormType4)
	record.Amendment.DateOfOriginalSubmission = ""

	assert.Empty(t, check(record))
}

func TestCheck_FindingOrderIsStable(t *testing.T) {
	record := models.NewFilingRecord(models.FormType5A)
	record.ReportingOwners = append(record.ReportingOwners, models.ReportingOwner{Name: "Named Owner"})

	first := check(record)
	second := check(record)
	assert.Equal(t, first, second)

	assert.Equal(t, []string{
		FindingIssuerCIKRequired,
		FindingIssuerNameRequired,
		OwnerCIKRequired(1),
		OwnerCCCRequired(1),
		OwnerRelationshipRequired(1),
		FindingEntryRequired,
		FindingAmendmentDateRequired,
	}, first)
}

func TestCheck_IsPure(t *testing.T) {
	record := models.NewFilingRecord(models.FormType4)
	before := record

	_ = check(record)

	assert.Equal(t, before, record)
}
