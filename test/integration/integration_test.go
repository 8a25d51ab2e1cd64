package integration

import (
	"context"
	"testing"

	"github.com/rpgo/retirement-optimizer/internal/calculation"
	"github.com/rpgo/retirement-optimizer/internal/config"
	"github.com/rpgo/retirement-optimizer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T) *domain.Configuration {
	t.Helper()
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile("../testdata/example_config.yaml")
	require.NoError(t, err)
	return cfg
}

func TestEndToEndCalculation(t *testing.T) {
	cfg := loadFixture(t)
	assert.Len(t, cfg.Scenarios, 5)

	engine := calculation.NewCalculationEngine()
	report, err := engine.RunScenarios(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, report.Scenarios, 5)

	saver := report.Scenarios[0]
	assert.InDelta(t, 342715.06548954145, saver.FinalBalance.InexactFloat64(), 0.01)
	assert.Len(t, saver.Series, 20)
	assert.Equal(t, 2030, saver.Series[0].CalendarYear)
	assert.Equal(t, 2049, saver.Series[19].CalendarYear)

	historical := report.Scenarios[1]
	assert.InDelta(t, 356647.3236860536, historical.FinalBalance.InexactFloat64(), 0.01)
	require.Len(t, historical.Series, 10)
	assert.InDelta(t, 0.1506, historical.Series[0].Rate.InexactFloat64(), 1e-12)
	assert.InDelta(t, 0.3149, historical.Series[9].Rate.InexactFloat64(), 1e-12)

	lean := report.Scenarios[2]
	assert.Equal(t, 29, lean.YearsLasted)
	assert.False(t, lean.Perpetual)
	assert.Len(t, lean.Series, lean.YearsLasted)

	endowment := report.Scenarios[3]
	assert.True(t, endowment.Perpetual)
	assert.Equal(t, calculation.MaxSimulationYears, endowment.YearsLasted)

	spend := report.Scenarios[4]
	assert.Equal(t, calculation.DefaultTargetYears, spend.TargetYears)
	assert.Equal(t, "66045.51", spend.OptimalWithdrawal.StringFixed(2))
	assert.Equal(t, 30, spend.VerifiedYears)
}

func TestRateFileIsCachedAcrossRuns(t *testing.T) {
	cfg := loadFixture(t)
	engine := calculation.NewCalculationEngine()

	first, err := engine.RunScenarios(context.Background(), cfg)
	require.NoError(t, err)
	second, err := engine.RunScenarios(context.Background(), cfg)
	require.NoError(t, err)

	assert.True(t, first.Scenarios[1].FinalBalance.Equal(second.Scenarios[1].FinalBalance))
}

func TestConfigurationValidation(t *testing.T) {
	parser := config.NewInputParser()
	cfg := loadFixture(t)
	assert.NoError(t, parser.ValidateConfiguration(cfg))

	cfg.Scenarios[1].RatesFromYear = 1990
	engine := calculation.NewCalculationEngine()
	_, err := engine.RunScenarios(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Historical Decade")
}
