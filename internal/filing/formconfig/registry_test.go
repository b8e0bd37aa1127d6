package formconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunsetmark/palyingwithedgar-sub001/internal/filing/models"
)

func TestResolve_FormType3(t *testing.T) {
	cfg := Resolve(models.FormType3)

	assert.Equal(t, models.FormType3, cfg.FormType)
	assert.False(t, cfg.IsAmendment)
	assert.False(t, cfg.ShowTransactions)
	assert.True(t, cfg.ShowHoldings)
	assert.False(t, cfg.ShowLateHoldings)
	assert.False(t, cfg.ShowAffirmation)
	assert.Equal(t, 0, cfg.MaxNonDerivativeTransactions)
	assert.Equal(t, 30, cfg.MaxNonDerivativeHoldings)
	assert.Empty(t, cfg.TransactionFormType)
}

func TestResolve_FormType4(t *testing.T) {
	cfg := Resolve(models.FormType4)

	assert.True(t, cfg.ShowTransactions)
	assert.Equal(t, 30, cfg.MaxNonDerivativeTransactions)
	assert.Equal(t, 30, cfg.MaxDerivativeTransactions)
	assert.Equal(t, "4", cfg.TransactionFormType)
	assert.False(t, cfg.ShowLateHoldings)
	assert.False(t, cfg.ShowAffirmation)
}

func TestResolve_FormType5(t *testing.T) {
	cfg := Resolve(models.FormType5)

	assert.True(t, cfg.ShowTransactions)
	assert.True(t, cfg.ShowLateHoldings)
	assert.True(t, cfg.ShowAffirmation)
	assert.Equal(t, "5", cfg.TransactionFormType)
}

func TestResolve_UnknownTypeFallsBackToDefault(t *testing.T) {
	for _, raw := range []string{"", "6", "10-K", "4/B"} {
		cfg := Resolve(models.FormType(raw))
		assert.Equal(t, models.FormType3, cfg.FormType, "input %q", raw)
		assert.False(t, cfg.ShowTransactions, "input %q", raw)
	}
}

func TestResolve_AmendmentVariants(t *testing.T) {
	tests := []struct {
		formType models.FormType
		base     models.FormType
	}{
		{models.FormType3A, models.FormType3},
		{models.FormType4A, models.FormType4},
		{models.FormType5A, models.FormType5},
	}
	for _, tc := range tests {
		t.Run(tc.formType.String(), func(t *testing.T) {
			cfg := Resolve(tc.formType)
			baseCfg := Resolve(tc.base)

			assert.True(t, cfg.IsAmendment)
			assert.Equal(t, tc.formType, cfg.FormType)

			// Amendment variants mirror the base configuration apart from
			// the extra step.
			assert.Equal(t, baseCfg.ShowTransactions, cfg.ShowTransactions)
			assert.Equal(t, baseCfg.ShowLateHoldings, cfg.ShowLateHoldings)
			assert.Equal(t, baseCfg.TransactionFormType, cfg.TransactionFormType)
			assert.Equal(t, baseCfg.StepCount()+1, cfg.StepCount())
			assert.Equal(t, SectionAmendment, cfg.Steps[1].Section)
		})
	}
}

func TestResolve_StepSequences(t *testing.T) {
	sections := func(cfg Configuration) []SectionKind {
		out := make([]SectionKind, 0, len(cfg.Steps))
		for _, step := range cfg.Steps {
			out = append(out, step.Section)
		}
		return out
	}

	assert.Equal(t,
		[]SectionKind{SectionIssuer, SectionOwners, SectionHoldings, SectionFootnotes, SectionReview},
		sections(Resolve(models.FormType3)))

	assert.Equal(t,
		[]SectionKind{SectionIssuer, SectionOwners, SectionTransactions, SectionHoldings, SectionFootnotes, SectionReview},
		sections(Resolve(models.FormType4)))

	assert.Equal(t,
		[]SectionKind{SectionIssuer, SectionAmendment, SectionOwners, SectionTransactions, SectionHoldings, SectionFootnotes, SectionReview},
		sections(Resolve(models.FormType5A)))
}

func TestResolve_StepsStartWithIssuerAndEndWithReview(t *testing.T) {
	all := []models.FormType{
		models.FormType3, models.FormType3A,
		models.FormType4, models.FormType4A,
		models.FormType5, models.FormType5A,
	}
	for _, formType := range all {
		cfg := Resolve(formType)
		require.NotEmpty(t, cfg.Steps)
		assert.Equal(t, SectionIssuer, cfg.Steps[0].Section, "form %s", formType)
		assert.Equal(t, SectionReview, cfg.Steps[len(cfg.Steps)-1].Section, "form %s", formType)
	}
}

func TestIsAmendmentTypeAndBaseType(t *testing.T) {
	assert.True(t, IsAmendmentType(models.FormType4A))
	assert.False(t, IsAmendmentType(models.FormType4))
	assert.Equal(t, models.FormType4, BaseType(models.FormType4A))
	assert.Equal(t, models.FormType4, BaseType(models.FormType4))
	assert.Equal(t, models.FormType3, BaseType(models.FormType3A))
}

func TestConfiguration_KindAccessors(t *testing.T) {
	cfg := Resolve(models.FormType4)
	assert.Equal(t, cfg.MaxNonDerivativeTransactions, cfg.MaxTransactions(models.NonDerivative))
	assert.Equal(t, cfg.MaxDerivativeTransactions, cfg.MaxTransactions(models.Derivative))
	assert.Equal(t, cfg.MaxNonDerivativeHoldings, cfg.MaxHoldings(models.NonDerivative))
	assert.Equal(t, cfg.MaxDerivativeHoldings, cfg.MaxHoldings(models.Derivative))
}
