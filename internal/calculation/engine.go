package calculation

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"sync"
	"time"

	"github.com/rpgo/retirement-optimizer/internal/domain"
	"github.com/rpgo/retirement-optimizer/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// CalculationEngine runs configured scenarios through the simulation core
type CalculationEngine struct {
	Debug  bool // attach debug lines for every simulated year
	Logger Logger

	// rate series loaded from rates_file, keyed by resolved path
	mu     sync.Mutex
	series map[string]*RateSeries
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		Logger: NopLogger{},
		series: make(map[string]*RateSeries),
	}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// RunScenario calculates a single scenario
func (ce *CalculationEngine) RunScenario(ctx context.Context, config *domain.Configuration, scenario *domain.Scenario) (*domain.ScenarioResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := dateutil.ProjectionStart(config.Assumptions.StartYear, nowFunc())
	principal := scenario.Principal.InexactFloat64()

	result := &domain.ScenarioResult{
		Name:      scenario.Name,
		Kind:      scenario.Kind,
		Principal: scenario.Principal,
	}

	switch scenario.Kind {
	case domain.KindFixedGrowth:
		result.Rate = scenario.Rate
		result.MeanRate = scenario.Rate
		schedule := ConstantRate(scenario.Rate.InexactFloat64(), scenario.Years)
		if err := ce.runGrowth(result, principal, schedule, scenario.Contribution, start); err != nil {
			return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}

	case domain.KindVariableGrowth:
		rates, err := ce.resolveRates(config, scenario)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}
		result.MeanRate = meanRate(rates)
		if err := ce.runGrowth(result, principal, VariableRates(rates), scenario.Contribution, start); err != nil {
			return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}

	case domain.KindLongevity:
		rate := scenario.Rate.InexactFloat64()
		expense := scenario.Expense.InexactFloat64()
		steps := DepletionSeries(principal, expense, rate)
		if err := checkSeries(steps); err != nil {
			return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}

		result.Rate = scenario.Rate
		result.Expense = scenario.Expense
		result.YearsLasted = len(steps)
		result.Perpetual = result.YearsLasted >= MaxSimulationYears
		result.DepletedImmediately = result.YearsLasted <= 0
		result.Series = toYearBalances(steps, start)
		ce.Logger.Debugf("%s: balance lasts %d years", scenario.Name, result.YearsLasted)

	case domain.KindMaxWithdrawal:
		rate := scenario.Rate.InexactFloat64()
		target := scenario.TargetYears
		if target == 0 {
			target = DefaultTargetYears
		}
		optimal := MaxSustainableWithdrawal(principal, rate, target)
		steps := DepletionSeries(principal, optimal, rate)
		if err := checkSeries(steps); err != nil {
			return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}

		result.Rate = scenario.Rate
		result.TargetYears = target
		result.OptimalWithdrawal = decimal.NewFromFloat(optimal)
		result.VerifiedYears = len(steps)
		if principal > 0 {
			result.WithdrawalRate = decimal.NewFromFloat(optimal / principal)
		}
		result.Series = toYearBalances(steps, start)
		ce.Logger.Debugf("%s: optimal withdrawal %.2f verified for %d years (target %d)",
			scenario.Name, optimal, result.VerifiedYears, target)

	default:
		return nil, fmt.Errorf("scenario %q: unknown scenario kind %q", scenario.Name, scenario.Kind)
	}

	return result, nil
}

func (ce *CalculationEngine) runGrowth(result *domain.ScenarioResult, principal float64, schedule RateSchedule, contribution decimal.Decimal, start time.Time) error {
	steps := GrowthSeries(principal, schedule, contribution.InexactFloat64())
	if err := checkSeries(steps); err != nil {
		return err
	}

	result.Years = schedule.Years()
	result.Contribution = contribution
	result.FinalBalance = decimal.NewFromFloat(principal)
	if len(steps) > 0 {
		result.FinalBalance = decimal.NewFromFloat(steps[len(steps)-1].Balance)
	}
	result.Series = toYearBalances(steps, start)

	if ce.Debug {
		for _, s := range steps {
			ce.Logger.Debugf("%s year %d: rate %.4f balance %.2f", result.Name, s.Year, s.Rate, s.Balance)
		}
	}
	return nil
}

// checkSeries rejects series whose balance left the float64 range; non-finite
// values are sticky, so checking the last step is enough.
func checkSeries(steps []YearStep) error {
	if len(steps) == 0 {
		return nil
	}
	last := steps[len(steps)-1].Balance
	if math.IsInf(last, 0) || math.IsNaN(last) {
		return fmt.Errorf("projected balance overflows after %d years", len(steps))
	}
	return nil
}

// resolveRates returns the inline rates, or a window of the scenario's rates file.
func (ce *CalculationEngine) resolveRates(config *domain.Configuration, scenario *domain.Scenario) ([]float64, error) {
	if scenario.RatesFile == "" {
		rates := scenario.RateFloats()
		if scenario.Years > 0 && scenario.Years < len(rates) {
			rates = rates[:scenario.Years]
		}
		return rates, nil
	}

	path := scenario.RatesFile
	if !filepath.IsAbs(path) && config.Assumptions.DataPath != "" {
		path = filepath.Join(config.Assumptions.DataPath, path)
	}

	ce.mu.Lock()
	defer ce.mu.Unlock()

	rs, ok := ce.series[path]
	if !ok {
		var err error
		rs, err = LoadRateSeries(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load rates: %w", err)
		}
		if ce.series == nil {
			ce.series = make(map[string]*RateSeries)
		}
		ce.series[path] = rs
		ce.Logger.Infof("Loaded %d annual rates from %s (%d-%d)", len(rs.DataPoints), path, rs.MinYear, rs.MaxYear)
		if len(rs.Statistics.MissingYears) > 0 {
			ce.Logger.Warnf("%s is missing years %v", path, rs.Statistics.MissingYears)
		}
	}

	return rs.Window(scenario.RatesFromYear, scenario.Years)
}

// RunScenarios runs all scenarios in order and collects them into a report
func (ce *CalculationEngine) RunScenarios(ctx context.Context, config *domain.Configuration) (*domain.Report, error) {
	results := make([]domain.ScenarioResult, 0, len(config.Scenarios))

	for i := range config.Scenarios {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("scenario run cancelled: %w", err)
		}
		ce.Logger.Infof("Running scenario %d/%d: %s", i+1, len(config.Scenarios), config.Scenarios[i].Name)
		result, err := ce.RunScenario(ctx, config, &config.Scenarios[i])
		if err != nil {
			return nil, fmt.Errorf("RunScenario failed: %w", err)
		}
		results = append(results, *result)
	}

	return &domain.Report{
		GeneratedAt: nowFunc(),
		Scenarios:   results,
		Assumptions: ModelAssumptions(&config.Assumptions),
	}, nil
}

// ModelAssumptions describes the modelling rules applied to every scenario.
func ModelAssumptions(assumptions *domain.Assumptions) []string {
	lines := []string{
		"Growth is applied before the year's contribution or withdrawal",
		fmt.Sprintf("Longevity is capped at %d years; reaching the cap means the funds are perpetual", MaxSimulationYears),
		fmt.Sprintf("A balance below %g counts as depleted", DepletionEpsilon),
		fmt.Sprintf("Maximum withdrawal is found by %d bisection steps (default target %d years)", SearchIterations, DefaultTargetYears),
	}
	if assumptions != nil && assumptions.StartYear != 0 {
		lines = append(lines, fmt.Sprintf("Simulation year 1 is calendar year %d", assumptions.StartYear))
	}
	return lines
}

func toYearBalances(steps []YearStep, start time.Time) []domain.YearBalance {
	rows := make([]domain.YearBalance, len(steps))
	for i, s := range steps {
		rows[i] = domain.YearBalance{
			Year:         s.Year,
			CalendarYear: dateutil.CalendarYear(start, s.Year),
			Rate:         decimal.NewFromFloat(s.Rate),
			Flow:         decimal.NewFromFloat(s.Flow),
			Balance:      decimal.NewFromFloat(s.Balance),
		}
	}
	return rows
}

func meanRate(rates []float64) decimal.Decimal {
	if len(rates) == 0 {
		return decimal.Zero
	}
	sum := 0.0
	for _, r := range rates {
		sum += r
	}
	return decimal.NewFromFloat(sum / float64(len(rates)))
}
