package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/retirement-optimizer/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per scenario).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Kind", "Principal", "Rate", "MeanRate", "Years", "Contribution", "FinalBalance", "Expense", "YearsLasted", "Perpetual", "TargetYears", "OptimalWithdrawal", "WithdrawalRate", "VerifiedYears"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range sortedByName(report.Scenarios) {
		row := []string{
			sc.Name,
			string(sc.Kind),
			sc.Principal.StringFixed(2),
			sc.Rate.String(),
			sc.MeanRate.StringFixed(6),
			intToString(sc.Years),
			sc.Contribution.StringFixed(2),
			sc.FinalBalance.StringFixed(2),
			sc.Expense.StringFixed(2),
			intToString(sc.YearsLasted),
			boolToString(sc.Perpetual),
			intToString(sc.TargetYears),
			sc.OptimalWithdrawal.StringFixed(2),
			sc.WithdrawalRate.StringFixed(6),
			intToString(sc.VerifiedYears),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
