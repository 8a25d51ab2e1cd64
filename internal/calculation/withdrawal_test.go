package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaxSustainableWithdrawal(t *testing.T) {
	tests := []struct {
		name        string
		balance     float64
		rate        float64
		targetYears int
		expected    float64
		verified    int
	}{
		{"thirty years at five percent", 1000000, 0.05, 30, 66045.51485951216, 30},
		{"zero target uses default", 1000000, 0.05, 0, 66045.51485951216, 30},
		{"twenty five years at four percent", 500000, 0.04, 25, 32793.41566990894, 25},
		{"zero rate", 100000, 0, 10, 11111.111110999997, 10},
		{"horizon target", 100000, 0.05, MaxSimulationYears, 5000.00000013352, MaxSimulationYears},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MaxSustainableWithdrawal(tt.balance, tt.rate, tt.targetYears)
			assert.InDelta(t, tt.expected, got, 1e-6)
			assert.Equal(t, tt.verified, YearsLasted(tt.balance, got, tt.rate))
		})
	}
}

func TestMaxSustainableWithdrawalInfeasible(t *testing.T) {
	// a non-positive balance never survives any year
	assert.Equal(t, 0.0, MaxSustainableWithdrawal(-100, 0.05, 30))
	assert.Equal(t, 0.0, MaxSustainableWithdrawal(0, 0.05, 30))

	// -90% a year exhausts 100 in 8 years even with nothing withdrawn
	assert.Equal(t, 0.0, MaxSustainableWithdrawal(100, -0.9, 30))
}

func TestMaxSustainableWithdrawalTinyButFeasible(t *testing.T) {
	got := MaxSustainableWithdrawal(100000, -0.5, 30)
	assert.InDelta(t, 9.263225763408887e-05, got, 1e-12)
	assert.Equal(t, 30, YearsLasted(100000, got, -0.5))
}

func TestMaxSustainableWithdrawalBounds(t *testing.T) {
	for _, balance := range []float64{1, 1000, 250000, 5e6} {
		for _, rate := range []float64{-0.2, 0, 0.03, 0.07} {
			got := MaxSustainableWithdrawal(balance, rate, 20)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, balance)
		}
	}
}

func TestMaxSustainableWithdrawalDecreasesWithTarget(t *testing.T) {
	short := MaxSustainableWithdrawal(500000, 0.04, 10)
	long := MaxSustainableWithdrawal(500000, 0.04, 40)
	assert.Greater(t, short, long)
}

func TestMaxSustainableWithdrawalIsDeterministic(t *testing.T) {
	first := MaxSustainableWithdrawal(750000, 0.045, 35)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, MaxSustainableWithdrawal(750000, 0.045, 35))
	}
}
