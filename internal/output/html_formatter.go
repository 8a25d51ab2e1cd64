package output

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"

	"github.com/rpgo/retirement-optimizer/internal/domain"
)

// HTMLFormatter produces a standalone HTML report with one balance chart per scenario.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":     FormatCurrency,
	"rate":     FormatRate,
	"headline": func(sc domain.ScenarioResult) []string { return ScenarioHeadline(&sc) },
	"years":    formatYears,
	"add":      func(i, j int) int { return i + j },
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

// chartSeries is the per-scenario payload handed to Chart.js.
type chartSeries struct {
	Labels   []int     `json:"labels"`
	Balances []float64 `json:"balances"`
}

func newChartSeries(sc *domain.ScenarioResult) chartSeries {
	cs := chartSeries{
		Labels:   make([]int, len(sc.Series)),
		Balances: make([]float64, len(sc.Series)),
	}
	for i, y := range sc.Series {
		cs.Labels[i] = y.CalendarYear
		cs.Balances[i] = y.Balance.Round(2).InexactFloat64()
	}
	return cs
}

func (h HTMLFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer

	assumptions := report.Assumptions
	if len(assumptions) == 0 {
		assumptions = DefaultAssumptions
	}

	charts := make([]chartSeries, len(report.Scenarios))
	for i := range report.Scenarios {
		charts[i] = newChartSeries(&report.Scenarios[i])
	}

	data := struct {
		*domain.Report
		Highlights  Highlights
		Assumptions []string
		Charts      []chartSeries
	}{report, AnalyzeScenarios(report), assumptions, charts}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
