package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// YearBalance is one row of a year-by-year series.
type YearBalance struct {
	Year         int             `json:"year"`
	CalendarYear int             `json:"calendar_year"`
	Rate         decimal.Decimal `json:"rate"`
	Flow         decimal.Decimal `json:"flow"` // contribution (+) or withdrawal (-) after growth
	Balance      decimal.Decimal `json:"balance"`
}

// ScenarioResult holds the outcome of one scenario. Only the fields relevant to
// the scenario kind are populated.
type ScenarioResult struct {
	Name      string          `json:"name"`
	Kind      ScenarioKind    `json:"kind"`
	Principal decimal.Decimal `json:"principal"`
	Rate      decimal.Decimal `json:"rate"` // constant rate; zero for variable projections

	// Growth projections
	Years        int             `json:"years,omitempty"`
	Contribution decimal.Decimal `json:"contribution"`
	FinalBalance decimal.Decimal `json:"final_balance"`
	MeanRate     decimal.Decimal `json:"mean_rate"`

	// Longevity
	Expense             decimal.Decimal `json:"expense"`
	YearsLasted         int             `json:"years_lasted,omitempty"`
	Perpetual           bool            `json:"perpetual,omitempty"`
	DepletedImmediately bool            `json:"depleted_immediately,omitempty"`

	// Withdrawal solver
	TargetYears       int             `json:"target_years,omitempty"`
	OptimalWithdrawal decimal.Decimal `json:"optimal_withdrawal"`
	WithdrawalRate    decimal.Decimal `json:"withdrawal_rate"` // optimal withdrawal / principal
	VerifiedYears     int             `json:"verified_years,omitempty"`

	Series []YearBalance `json:"series"`
}

// Report is the set of results produced from one configuration.
type Report struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Scenarios   []ScenarioResult `json:"scenarios"`
	Assumptions []string         `json:"assumptions"`
}
