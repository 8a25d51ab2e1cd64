package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYearsLasted(t *testing.T) {
	tests := []struct {
		name     string
		balance  float64
		expense  float64
		rate     float64
		expected int
	}{
		{"depletes within horizon", 500000, 30000, 0.04, 29},
		{"expense equal to growth is perpetual", 500000, 20000, 0.04, MaxSimulationYears},
		{"expense just under growth is perpetual", 500000, 19999, 0.04, MaxSimulationYears},
		{"expense exceeds balance counts first year", 100, 1000, 0.05, 1},
		{"zero balance", 0, 10, 0.05, 0},
		{"negative balance", -50, 10, 0.05, 0},
		{"no expense positive rate", 1000, 0, 0.05, MaxSimulationYears},
		{"no expense halving rate hits epsilon", 1000, 0, -0.5, 30},
		{"no expense steep loss", 100, 0, -0.9, 8},
		{"large perpetual", 1000000, 50000, 0.05, MaxSimulationYears},
		{"large sub-growth expense", 1000000, 40000, 0.05, MaxSimulationYears},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, YearsLasted(tt.balance, tt.expense, tt.rate))
		})
	}
}

func TestYearsLastedBounds(t *testing.T) {
	for _, balance := range []float64{-1, 0, 1, 1000, 1e9} {
		for _, expense := range []float64{0, 1, 100, 1e6} {
			for _, rate := range []float64{-1, -0.3, 0, 0.03, 0.5} {
				got := YearsLasted(balance, expense, rate)
				assert.GreaterOrEqual(t, got, 0)
				assert.LessOrEqual(t, got, MaxSimulationYears)
			}
		}
	}
}

func TestYearsLastedMonotonicInExpense(t *testing.T) {
	prev := YearsLasted(500000, 0, 0.04)
	for _, expense := range []float64{10000, 20000, 25000, 30000, 40000, 80000, 600000} {
		got := YearsLasted(500000, expense, 0.04)
		assert.LessOrEqual(t, got, prev, "expense %v", expense)
		prev = got
	}
}

func TestDepletionSeries(t *testing.T) {
	steps := DepletionSeries(500000, 30000, 0.04)
	require.Len(t, steps, YearsLasted(500000, 30000, 0.04))

	assert.InDelta(t, 490000, steps[0].Balance, 1e-6)
	assert.InDelta(t, 479600, steps[1].Balance, 1e-6)
	assert.InDelta(t, 468784, steps[2].Balance, 1e-6)
	assert.Equal(t, -30000.0, steps[0].Flow)
	assert.Less(t, steps[len(steps)-1].Balance, DepletionEpsilon)

	assert.Empty(t, DepletionSeries(0, 10, 0.05))
	assert.Len(t, DepletionSeries(1000, 0, 0.05), MaxSimulationYears)
}
