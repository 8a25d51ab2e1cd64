package output

import (
	"github.com/rpgo/retirement-optimizer/internal/domain"
	"github.com/shopspring/decimal"
)

// Highlights picks the standout scenario of each kind family. Ties go to the
// scenario listed first.
type Highlights struct {
	LargestBalance          string
	LargestBalanceAmount    decimal.Decimal
	LongestLasting          string
	LongestYears            int
	HighestWithdrawal       string
	HighestWithdrawalAmount decimal.Decimal
}

func (h Highlights) any() bool {
	return h.LargestBalance != "" || h.LongestLasting != "" || h.HighestWithdrawal != ""
}

// AnalyzeScenarios compares growth projections by final balance, longevity runs by
// years lasted and solver runs by optimal withdrawal.
func AnalyzeScenarios(report *domain.Report) Highlights {
	var h Highlights
	for _, sc := range report.Scenarios {
		switch sc.Kind {
		case domain.KindFixedGrowth, domain.KindVariableGrowth:
			if h.LargestBalance == "" || sc.FinalBalance.GreaterThan(h.LargestBalanceAmount) {
				h.LargestBalance = sc.Name
				h.LargestBalanceAmount = sc.FinalBalance
			}
		case domain.KindLongevity:
			if h.LongestLasting == "" || sc.YearsLasted > h.LongestYears {
				h.LongestLasting = sc.Name
				h.LongestYears = sc.YearsLasted
			}
		case domain.KindMaxWithdrawal:
			if h.HighestWithdrawal == "" || sc.OptimalWithdrawal.GreaterThan(h.HighestWithdrawalAmount) {
				h.HighestWithdrawal = sc.Name
				h.HighestWithdrawalAmount = sc.OptimalWithdrawal
			}
		}
	}
	return h
}
