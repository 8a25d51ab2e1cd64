package domain

import (
	"github.com/shopspring/decimal"
)

// ScenarioKind selects which calculation a scenario runs.
type ScenarioKind string

const (
	// KindFixedGrowth projects a balance at one constant annual rate.
	KindFixedGrowth ScenarioKind = "fixed_growth"
	// KindVariableGrowth projects a balance through one rate per year.
	KindVariableGrowth ScenarioKind = "variable_growth"
	// KindLongevity counts the years a balance survives a fixed withdrawal.
	KindLongevity ScenarioKind = "longevity"
	// KindMaxWithdrawal solves the largest withdrawal lasting the target years.
	KindMaxWithdrawal ScenarioKind = "max_withdrawal"
)

// ScenarioKinds lists every supported kind in menu order.
var ScenarioKinds = []ScenarioKind{KindFixedGrowth, KindVariableGrowth, KindLongevity, KindMaxWithdrawal}

// Valid reports whether k is a known scenario kind.
func (k ScenarioKind) Valid() bool {
	for _, known := range ScenarioKinds {
		if k == known {
			return true
		}
	}
	return false
}

// Configuration is the top-level input document.
type Configuration struct {
	Assumptions Assumptions `yaml:"assumptions" json:"assumptions"`
	Scenarios   []Scenario  `yaml:"scenarios" json:"scenarios"`
}

// Assumptions holds settings shared by every scenario.
type Assumptions struct {
	// StartYear labels simulation year 1 with a calendar year (default: current year).
	StartYear int `yaml:"start_year,omitempty" json:"start_year,omitempty"`
	// DataPath is the base directory for relative rates_file paths.
	DataPath string `yaml:"data_path,omitempty" json:"data_path,omitempty"`
}

// Scenario describes one calculation. Which fields are read depends on Kind:
//
//	fixed_growth:    principal, rate, years, contribution
//	variable_growth: principal, rates or rates_file (+ rates_from_year, years), contribution
//	longevity:       principal (starting balance), expense, rate
//	max_withdrawal:  principal (starting balance), rate, target_years
type Scenario struct {
	Name          string            `yaml:"name" json:"name"`
	Kind          ScenarioKind      `yaml:"kind" json:"kind"`
	Principal     decimal.Decimal   `yaml:"principal" json:"principal"`
	Rate          decimal.Decimal   `yaml:"rate,omitempty" json:"rate,omitempty"`
	Rates         []decimal.Decimal `yaml:"rates,omitempty" json:"rates,omitempty"`
	RatesFile     string            `yaml:"rates_file,omitempty" json:"rates_file,omitempty"`
	RatesFromYear int               `yaml:"rates_from_year,omitempty" json:"rates_from_year,omitempty"`
	Years         int               `yaml:"years,omitempty" json:"years,omitempty"`
	Contribution  decimal.Decimal   `yaml:"contribution,omitempty" json:"contribution,omitempty"`
	Expense       decimal.Decimal   `yaml:"expense,omitempty" json:"expense,omitempty"`
	TargetYears   int               `yaml:"target_years,omitempty" json:"target_years,omitempty"`
}

// RateFloats converts the inline rate list for the simulation core.
func (s *Scenario) RateFloats() []float64 {
	rates := make([]float64, len(s.Rates))
	for i, r := range s.Rates {
		rates[i] = r.InexactFloat64()
	}
	return rates
}
