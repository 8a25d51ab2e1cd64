package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/retirement-optimizer/internal/domain"
)

// CSVDetailedExporter writes the year-by-year series of every scenario, one row
// per scenario/year, for plotting.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Kind", "Year", "CalendarYear", "Rate", "Flow", "Balance"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range sortedByName(report.Scenarios) {
		for _, yr := range sc.Series {
			row := []string{
				sc.Name,
				string(sc.Kind),
				intToString(yr.Year),
				intToString(yr.CalendarYear),
				yr.Rate.String(),
				yr.Flow.StringFixed(2),
				yr.Balance.StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
