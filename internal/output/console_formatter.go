package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/retirement-optimizer/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "RETIREMENT SCENARIO SUMMARY")
	fmt.Fprintln(&buf, "================================")
	for _, sc := range sortedByName(report.Scenarios) {
		switch sc.Kind {
		case domain.KindFixedGrowth, domain.KindVariableGrowth:
			fmt.Fprintf(&buf, "%s: Final=%s Years=%d MeanRate=%s\n",
				sc.Name, FormatCurrency(sc.FinalBalance), sc.Years, FormatRate(sc.MeanRate))
		case domain.KindLongevity:
			fmt.Fprintf(&buf, "%s: Lasts=%s Expense=%s\n", sc.Name, formatYears(sc.YearsLasted), FormatCurrency(sc.Expense))
		case domain.KindMaxWithdrawal:
			fmt.Fprintf(&buf, "%s: MaxWithdrawal=%s Target=%d Verified=%d\n",
				sc.Name, FormatCurrency(sc.OptimalWithdrawal), sc.TargetYears, sc.VerifiedYears)
		}
	}
	if h := AnalyzeScenarios(report); h.any() {
		fmt.Fprintln(&buf)
		writeHighlights(&buf, h)
	}
	return buf.Bytes(), nil
}
