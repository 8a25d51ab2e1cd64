package output

import (
	"testing"

	"github.com/rpgo/retirement-optimizer/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestAnalyzeScenarios(t *testing.T) {
	h := AnalyzeScenarios(buildTestReport())

	assert.Equal(t, "Bumpy", h.LargestBalance)
	assert.True(t, h.LargestBalanceAmount.Equal(dec("12823.5")))
	assert.Equal(t, "Perpetual", h.LongestLasting)
	assert.Equal(t, 500, h.LongestYears)
	assert.Equal(t, "Solver", h.HighestWithdrawal)
	assert.True(t, h.any())
}

func TestAnalyzeScenarios_TiesKeepFirst(t *testing.T) {
	report := &domain.Report{Scenarios: []domain.ScenarioResult{
		{Name: "first", Kind: domain.KindLongevity, YearsLasted: 10},
		{Name: "second", Kind: domain.KindLongevity, YearsLasted: 10},
	}}
	h := AnalyzeScenarios(report)
	assert.Equal(t, "first", h.LongestLasting)
	assert.Empty(t, h.LargestBalance)
	assert.Empty(t, h.HighestWithdrawal)
}

func TestAnalyzeScenarios_Empty(t *testing.T) {
	h := AnalyzeScenarios(&domain.Report{})
	assert.False(t, h.any())
}
