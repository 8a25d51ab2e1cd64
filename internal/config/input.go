package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rpgo/retirement-optimizer/internal/calculation"
	"github.com/rpgo/retirement-optimizer/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var (
	minRate = decimal.NewFromInt(-1)
	maxRate = decimal.NewFromInt(1)
)

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML (or JSON) file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if config.Assumptions.StartYear < 0 {
		return fmt.Errorf("start year cannot be negative")
	}

	if len(config.Scenarios) == 0 {
		return fmt.Errorf("no scenarios provided")
	}

	seen := make(map[string]bool, len(config.Scenarios))
	for i := range config.Scenarios {
		scenario := &config.Scenarios[i]
		if err := ip.ValidateScenario(scenario); err != nil {
			return fmt.Errorf("scenario %d validation failed: %w", i, err)
		}
		if seen[scenario.Name] {
			return fmt.Errorf("scenario %d: duplicate scenario name %q", i, scenario.Name)
		}
		seen[scenario.Name] = true
	}

	return nil
}

// ValidateScenario range-checks a single scenario for its kind. The simulation
// core performs no validation of its own.
func (ip *InputParser) ValidateScenario(scenario *domain.Scenario) error {
	if strings.TrimSpace(scenario.Name) == "" {
		return fmt.Errorf("scenario name is required")
	}
	if !scenario.Kind.Valid() {
		return fmt.Errorf("unknown scenario kind %q (expected one of %s)", scenario.Kind, kindList())
	}
	if scenario.Principal.IsNegative() {
		return fmt.Errorf("principal cannot be negative")
	}

	switch scenario.Kind {
	case domain.KindFixedGrowth:
		if err := validateRate("rate", scenario.Rate); err != nil {
			return err
		}
		if scenario.Years < 0 || scenario.Years > calculation.MaxSimulationYears {
			return fmt.Errorf("years must be between 0 and %d", calculation.MaxSimulationYears)
		}
	case domain.KindVariableGrowth:
		if len(scenario.Rates) == 0 && scenario.RatesFile == "" {
			return fmt.Errorf("at least one rate (rates or rates_file) is required")
		}
		if len(scenario.Rates) > 0 && scenario.RatesFile != "" {
			return fmt.Errorf("specify either rates or rates_file, not both")
		}
		for i, r := range scenario.Rates {
			if err := validateRate(fmt.Sprintf("rates[%d]", i), r); err != nil {
				return err
			}
		}
		if scenario.Years < 0 || scenario.Years > calculation.MaxSimulationYears {
			return fmt.Errorf("years must be between 0 and %d", calculation.MaxSimulationYears)
		}
	case domain.KindLongevity:
		if err := validateRate("rate", scenario.Rate); err != nil {
			return err
		}
		if scenario.Expense.IsNegative() {
			return fmt.Errorf("expense cannot be negative")
		}
	case domain.KindMaxWithdrawal:
		if err := validateRate("rate", scenario.Rate); err != nil {
			return err
		}
		if scenario.TargetYears < 0 || scenario.TargetYears > calculation.MaxSimulationYears {
			return fmt.Errorf("target years must be between 0 and %d", calculation.MaxSimulationYears)
		}
	}

	return nil
}

func validateRate(field string, rate decimal.Decimal) error {
	if rate.LessThan(minRate) || rate.GreaterThan(maxRate) {
		return fmt.Errorf("%s must be between -100%% and 100%% (got %s)", field, rate.String())
	}
	return nil
}

func kindList() string {
	names := make([]string, len(domain.ScenarioKinds))
	for i, k := range domain.ScenarioKinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

// ParseRateList parses a comma-separated list of fractional rates such as
// "0.10, 0.05, -0.02". Empty items are skipped.
func ParseRateList(input string) ([]decimal.Decimal, error) {
	var rates []decimal.Decimal
	for _, item := range strings.Split(input, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		r, err := decimal.NewFromString(item)
		if err != nil {
			return nil, fmt.Errorf("invalid rate %q: %w", item, err)
		}
		rates = append(rates, r)
	}
	return rates, nil
}

// CreateExampleConfiguration creates an example configuration covering every
// scenario kind
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	return &domain.Configuration{
		Assumptions: domain.Assumptions{
			StartYear: 2026,
		},
		Scenarios: []domain.Scenario{
			{
				Name:         "Steady Saver",
				Kind:         domain.KindFixedGrowth,
				Principal:    decimal.NewFromInt(10000),
				Rate:         decimal.NewFromFloat(0.05),
				Years:        10,
				Contribution: decimal.NewFromInt(0),
			},
			{
				Name:         "Bumpy Market",
				Kind:         domain.KindVariableGrowth,
				Principal:    decimal.NewFromInt(10000),
				Rates:        []decimal.Decimal{decimal.NewFromFloat(0.10), decimal.NewFromFloat(0.05), decimal.NewFromFloat(-0.02)},
				Contribution: decimal.NewFromInt(500),
			},
			{
				Name:      "Retirement Longevity",
				Kind:      domain.KindLongevity,
				Principal: decimal.NewFromInt(500000),
				Expense:   decimal.NewFromInt(30000),
				Rate:      decimal.NewFromFloat(0.04),
			},
			{
				Name:        "Max Withdrawal 30y",
				Kind:        domain.KindMaxWithdrawal,
				Principal:   decimal.NewFromInt(1000000),
				Rate:        decimal.NewFromFloat(0.05),
				TargetYears: calculation.DefaultTargetYears,
			},
		},
	}
}
