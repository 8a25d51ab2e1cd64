package calculation

// Simulation limits. The values are part of the output contract: changing any of
// them changes reported year counts and solver results.
const (
	// MaxSimulationYears caps the depletion loop. A result equal to the cap means
	// the balance never depleted inside the horizon and should be read as perpetual.
	MaxSimulationYears = 500

	// SearchIterations is the fixed number of bisection steps taken by the
	// withdrawal solver. The search never exits early.
	SearchIterations = 100

	// DepletionEpsilon is the balance below which a depletion run stops even if
	// the balance is still nominally positive.
	DepletionEpsilon = 1e-6

	// DefaultTargetYears is the solver target used when the caller passes zero.
	DefaultTargetYears = 30
)

// RateSchedule yields the growth rate for each simulated year. It is a value type,
// so every call that receives one walks it from the first year.
type RateSchedule struct {
	years    int
	constant float64
	rates    []float64
}

// ConstantRate returns a schedule that repeats rate for the given number of years.
// A negative year count is treated as zero.
func ConstantRate(rate float64, years int) RateSchedule {
	if years < 0 {
		years = 0
	}
	return RateSchedule{years: years, constant: rate}
}

// VariableRates returns a schedule where rates[i] applies to simulation year i+1.
func VariableRates(rates []float64) RateSchedule {
	return RateSchedule{years: len(rates), rates: rates}
}

// Years reports how many years the schedule covers.
func (s RateSchedule) Years() int { return s.years }

// Rate returns the rate for the zero-based simulation year i.
func (s RateSchedule) Rate(i int) float64 {
	if s.rates != nil {
		return s.rates[i]
	}
	return s.constant
}

// YearStep is one simulated year: the rate applied, the amount added (positive) or
// withdrawn (negative) after growth, and the closing balance.
type YearStep struct {
	Year    int
	Rate    float64
	Flow    float64
	Balance float64
}

// growthStep applies one year: growth first, then the flow.
// The explicit float64 conversion keeps the product from being fused with the add.
func growthStep(balance, rate, flow float64) float64 {
	return float64(balance*(1+rate)) + flow
}

func project(principal float64, schedule RateSchedule, contribution float64, visit func(YearStep)) float64 {
	balance := principal
	for i := 0; i < schedule.Years(); i++ {
		rate := schedule.Rate(i)
		balance = growthStep(balance, rate, contribution)
		if visit != nil {
			visit(YearStep{Year: i + 1, Rate: rate, Flow: contribution, Balance: balance})
		}
	}
	return balance
}

// Project returns the balance after applying every year of the schedule to
// principal, adding contribution at the end of each year.
func Project(principal float64, schedule RateSchedule, contribution float64) float64 {
	return project(principal, schedule, contribution, nil)
}

// ProjectFixed projects principal for years at a constant annual rate.
func ProjectFixed(principal, rate float64, years int, contribution float64) float64 {
	return Project(principal, ConstantRate(rate, years), contribution)
}

// ProjectVariable projects principal through one rate per year, in order.
func ProjectVariable(principal float64, rates []float64, contribution float64) float64 {
	return Project(principal, VariableRates(rates), contribution)
}

// GrowthSeries returns the closing balance of every simulated year. The last
// entry always equals Project for the same inputs.
func GrowthSeries(principal float64, schedule RateSchedule, contribution float64) []YearStep {
	steps := make([]YearStep, 0, schedule.Years())
	project(principal, schedule, contribution, func(s YearStep) {
		steps = append(steps, s)
	})
	return steps
}
