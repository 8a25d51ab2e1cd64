package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/rpgo/retirement-optimizer/internal/calculation"
	"github.com/rpgo/retirement-optimizer/internal/domain"
)

const resultRule = "-----------------------------------------------------"

// ConsoleVerboseFormatter renders the detailed console report via the pluggable interface.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf, "RETIREMENT OPTIMIZATION REPORT")
	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	assumptions := report.Assumptions
	if len(assumptions) == 0 {
		assumptions = DefaultAssumptions
	}
	for _, a := range assumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	for i := range report.Scenarios {
		sc := &report.Scenarios[i]
		fmt.Fprintf(&buf, "SCENARIO %d: %s\n", i+1, sc.Name)
		fmt.Fprintln(&buf, strings.Repeat("=", 50))
		writeInputs(&buf, sc)
		fmt.Fprintln(&buf)
		WriteResult(&buf, sc)
		writeSeries(&buf, sc)
		fmt.Fprintln(&buf)
	}

	if h := AnalyzeScenarios(report); h.any() {
		fmt.Fprintln(&buf, "HIGHLIGHTS")
		fmt.Fprintln(&buf, strings.Repeat("=", 50))
		writeHighlights(&buf, h)
	}

	return buf.Bytes(), nil
}

// ScenarioHeadline returns the result lines shown after a calculation.
func ScenarioHeadline(sc *domain.ScenarioResult) []string {
	switch sc.Kind {
	case domain.KindFixedGrowth, domain.KindVariableGrowth:
		return []string{fmt.Sprintf("✅ FINAL BALANCE AFTER %d YEARS: %s", sc.Years, FormatCurrency(sc.FinalBalance))}
	case domain.KindLongevity:
		switch {
		case sc.Perpetual:
			return []string{fmt.Sprintf("✅ Funds are Perpetual! (Lasts for >%d years)", calculation.MaxSimulationYears)}
		case sc.DepletedImmediately:
			return []string{"❌ Funds are depleted in Year 1 or less (Expense exceeds initial growth)."}
		default:
			return []string{fmt.Sprintf("✅ FUNDS LAST FOR: %d years", sc.YearsLasted)}
		}
	case domain.KindMaxWithdrawal:
		return []string{
			fmt.Sprintf("✅ MAX SUSTAINABLE ANNUAL WITHDRAWAL (for %d years): %s", sc.TargetYears, FormatCurrency(sc.OptimalWithdrawal)),
			fmt.Sprintf("(Verification: This withdrawal lasts for %d years)", sc.VerifiedYears),
		}
	}
	return nil
}

// WriteResult writes the headline block for one result between rules.
func WriteResult(w io.Writer, sc *domain.ScenarioResult) {
	fmt.Fprintln(w, resultRule)
	for _, line := range ScenarioHeadline(sc) {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w, resultRule)
}

func writeInputs(w io.Writer, sc *domain.ScenarioResult) {
	switch sc.Kind {
	case domain.KindFixedGrowth:
		fmt.Fprintf(w, "Fixed Growth: %s at %s for %d years, contributing %s a year\n",
			FormatCurrency(sc.Principal), FormatRate(sc.Rate), sc.Years, FormatCurrency(sc.Contribution))
	case domain.KindVariableGrowth:
		fmt.Fprintf(w, "Variable Growth: %s over %d rates (mean %s), contributing %s a year\n",
			FormatCurrency(sc.Principal), sc.Years, FormatRate(sc.MeanRate), FormatCurrency(sc.Contribution))
	case domain.KindLongevity:
		fmt.Fprintf(w, "Retirement Longevity: %s withdrawing %s a year at %s\n",
			FormatCurrency(sc.Principal), FormatCurrency(sc.Expense), FormatRate(sc.Rate))
	case domain.KindMaxWithdrawal:
		fmt.Fprintf(w, "Optimal Withdrawal: %s at %s, target %d years (withdrawal rate %s)\n",
			FormatCurrency(sc.Principal), FormatRate(sc.Rate), sc.TargetYears, FormatRate(sc.WithdrawalRate))
	}
}

func writeSeries(w io.Writer, sc *domain.ScenarioResult) {
	if len(sc.Series) == 0 {
		return
	}
	fmt.Fprintln(w, "YEAR-BY-YEAR:")
	fmt.Fprintf(w, "  %-6s %-6s %9s %18s %22s\n", "Year", "Cal.", "Rate", "Flow", "Balance")
	for _, y := range sc.Series {
		fmt.Fprintf(w, "  %-6d %-6d %9s %18s %22s\n",
			y.Year, y.CalendarYear, FormatRate(y.Rate), FormatCurrency(y.Flow), FormatCurrency(y.Balance))
	}
}

func writeHighlights(w io.Writer, h Highlights) {
	if h.LargestBalance != "" {
		fmt.Fprintf(w, "Largest final balance:   %s (%s)\n", h.LargestBalance, FormatCurrency(h.LargestBalanceAmount))
	}
	if h.LongestLasting != "" {
		fmt.Fprintf(w, "Longest lasting funds:   %s (%s)\n", h.LongestLasting, formatYears(h.LongestYears))
	}
	if h.HighestWithdrawal != "" {
		fmt.Fprintf(w, "Highest withdrawal:      %s (%s)\n", h.HighestWithdrawal, FormatCurrency(h.HighestWithdrawalAmount))
	}
}

func formatYears(years int) string {
	if years >= calculation.MaxSimulationYears {
		return "perpetual"
	}
	return fmt.Sprintf("%d years", years)
}
