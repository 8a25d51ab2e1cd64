package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rpgo/retirement-optimizer/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func series(start int, balances ...string) []domain.YearBalance {
	rows := make([]domain.YearBalance, len(balances))
	for i, b := range balances {
		rows[i] = domain.YearBalance{Year: i + 1, CalendarYear: start + i, Rate: dec("0.05"), Flow: dec("0"), Balance: dec(b)}
	}
	return rows
}

func buildTestReport() *domain.Report {
	return &domain.Report{
		GeneratedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Assumptions: []string{"Growth is applied before the year's contribution or withdrawal"},
		Scenarios: []domain.ScenarioResult{
			{
				Name: "Bumpy", Kind: domain.KindVariableGrowth, Principal: dec("10000"),
				Years: 3, Contribution: dec("500"), MeanRate: dec("0.0433"), FinalBalance: dec("12823.5"),
				Series: series(2026, "11500", "12575", "12823.5"),
			},
			{
				Name: "Alpha", Kind: domain.KindFixedGrowth, Principal: dec("1000"),
				Years: 5, Contribution: dec("100"), FinalBalance: dec("1500"),
				Series: series(2026, "1100", "1200", "1300", "1400", "1500"),
			},
			{
				Name: "Longevity", Kind: domain.KindLongevity, Principal: dec("500000"),
				Rate: dec("0.04"), Expense: dec("30000"), YearsLasted: 29,
				Series: series(2026, "490000", "479600"),
			},
			{
				Name: "Perpetual", Kind: domain.KindLongevity, Principal: dec("500000"),
				Rate: dec("0.04"), Expense: dec("20000"), YearsLasted: 500, Perpetual: true,
			},
			{
				Name: "Broke", Kind: domain.KindLongevity, Principal: dec("0"),
				Rate: dec("0.04"), Expense: dec("10"), DepletedImmediately: true,
			},
			{
				Name: "Solver", Kind: domain.KindMaxWithdrawal, Principal: dec("1000000"),
				Rate: dec("0.05"), TargetYears: 30, OptimalWithdrawal: dec("66045.51485951216"),
				WithdrawalRate: dec("0.06604551485951216"), VerifiedYears: 30,
			},
		},
	}
}

func TestConsoleLiteFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestReport())
	require.NoError(t, err)
	content := string(out)

	assert.Contains(t, content, "Alpha: Final=$1,500.00 Years=5")
	assert.Contains(t, content, "Longevity: Lasts=29 years Expense=$30,000.00")
	assert.Contains(t, content, "Perpetual: Lasts=perpetual")
	assert.Contains(t, content, "Solver: MaxWithdrawal=$66,045.51 Target=30 Verified=30")
	assert.Less(t, strings.Index(content, "Alpha:"), strings.Index(content, "Bumpy:"), "scenarios should be sorted by name")
	assert.Contains(t, content, "Longest lasting funds:   Perpetual (perpetual)")
	assert.Contains(t, content, "Largest final balance:   Bumpy ($12,823.50)")
}

func TestConsoleVerboseFormatter(t *testing.T) {
	out, err := ConsoleVerboseFormatter{}.Format(buildTestReport())
	require.NoError(t, err)
	content := string(out)

	assert.Contains(t, content, "RETIREMENT OPTIMIZATION REPORT")
	assert.Contains(t, content, "• Growth is applied before the year's contribution or withdrawal")
	assert.Contains(t, content, "SCENARIO 1: Bumpy")
	assert.Contains(t, content, "✅ FINAL BALANCE AFTER 3 YEARS: $12,823.50")
	assert.Contains(t, content, "✅ FUNDS LAST FOR: 29 years")
	assert.Contains(t, content, "✅ Funds are Perpetual! (Lasts for >500 years)")
	assert.Contains(t, content, "❌ Funds are depleted in Year 1 or less (Expense exceeds initial growth).")
	assert.Contains(t, content, "✅ MAX SUSTAINABLE ANNUAL WITHDRAWAL (for 30 years): $66,045.51")
	assert.Contains(t, content, "(Verification: This withdrawal lasts for 30 years)")
	assert.Contains(t, content, "withdrawal rate 6.60%")
	assert.Contains(t, content, "YEAR-BY-YEAR:")
	assert.Contains(t, content, "$479,600.00")
}

func TestConsoleVerboseFormatter_DefaultAssumptions(t *testing.T) {
	report := buildTestReport()
	report.Assumptions = nil
	out, err := ConsoleVerboseFormatter{}.Format(report)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Longevity is capped at 500 years")
}

func TestCSVSummarizerDeterministicOrder(t *testing.T) {
	out, err := CSVSummarizer{}.Format(buildTestReport())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 7, "header + 6 rows")
	assert.True(t, strings.HasPrefix(lines[1], "Alpha,fixed_growth,1000.00,"))
	assert.True(t, strings.HasPrefix(lines[2], "Broke,"))
	assert.True(t, strings.HasPrefix(lines[3], "Bumpy,variable_growth,"))
	assert.Contains(t, lines[5], "Perpetual,longevity,500000.00,0.04,")
	assert.Contains(t, lines[5], ",500,true,")
	assert.Contains(t, lines[6], ",30,66045.51,0.066046,30")
}

func TestCSVDetailedExporter(t *testing.T) {
	out, err := CSVDetailedExporter{}.Format(buildTestReport())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 1+5+3+2)
	assert.Equal(t, "Alpha,fixed_growth,1,2026,0.05,0.00,1100.00", lines[1])
	assert.Equal(t, "Bumpy,variable_growth,3,2028,0.05,0.00,12823.50", lines[8])
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestReport())
	require.NoError(t, err)

	var decoded domain.Report
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Len(t, decoded.Scenarios, 6)
	assert.Equal(t, "Bumpy", decoded.Scenarios[0].Name)
	assert.True(t, decoded.Scenarios[0].FinalBalance.Equal(dec("12823.5")))
	assert.True(t, decoded.Scenarios[3].Perpetual)
	assert.Equal(t, time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC), decoded.GeneratedAt.UTC())
}

func TestHTMLFormatter(t *testing.T) {
	out, err := HTMLFormatter{}.Format(buildTestReport())
	require.NoError(t, err)
	content := string(out)

	assert.Contains(t, content, "<h1>Retirement Optimization Report</h1>")
	assert.Contains(t, content, "Generated 2026-03-14 09:30")
	assert.Contains(t, content, "1. Bumpy")
	assert.Contains(t, content, `id="chart-0"`)
	assert.Contains(t, content, `"labels":[2026,2027,2028]`)
	assert.Contains(t, content, "FUNDS LAST FOR: 29 years")
	assert.NotContains(t, content, `id="chart-3"`, "scenarios without a series get no chart")
}

// Golden snapshot tests (prefix-based) ensure key headers remain stable.
func TestGoldenSnapshots(t *testing.T) {
	cases := []struct {
		name      string
		golden    string
		formatter Formatter
	}{
		{"console_verbose", "console_verbose.golden", ConsoleVerboseFormatter{}},
		{"console_lite", "console_lite.golden", ConsoleFormatter{}},
		{"csv_summary", "csv_summary.golden", CSVSummarizer{}},
		{"csv_detailed", "csv_detailed.golden", CSVDetailedExporter{}},
		{"html", "html_prefix.golden", HTMLFormatter{}},
		{"json", "json_prefix.golden", JSONFormatter{}},
	}

	report := buildTestReport()
	update := os.Getenv("UPDATE_GOLDEN") == "1"
	for _, tc := range cases {
		out, err := tc.formatter.Format(report)
		require.NoError(t, err, tc.name)

		goldenPath := filepath.Join("testdata", tc.golden)
		if update {
			// only first line to keep golden small & stable
			line := firstLine(string(out)) + "\n"
			require.NoError(t, os.WriteFile(goldenPath, []byte(line), 0644))
		}
		data, err := os.ReadFile(goldenPath)
		require.NoError(t, err, tc.name)
		assert.True(t, strings.HasPrefix(string(out), strings.TrimSpace(string(data))),
			"%s: output does not match golden prefix %q", tc.name, strings.TrimSpace(string(data)))
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func TestFormatterRegistry(t *testing.T) {
	assert.Equal(t, []string{"console", "console-lite", "csv", "detailed-csv", "html", "json"}, AvailableFormatterNames())

	assert.Equal(t, "console", GetFormatterByName("verbose").Name())
	assert.Equal(t, "json", GetFormatterByName("  JSON ").Name())
	assert.Equal(t, "detailed-csv", GetFormatterByName("series").Name())
	assert.Nil(t, GetFormatterByName("pdf"))

	aliases := AvailableFormatAliases()
	assert.Contains(t, aliases, "csv-detailed")
	for _, name := range AvailableFormatterNames() {
		assert.Contains(t, extensions, name)
	}

	custom := FormatterFunc{ID: "names", F: func(r *domain.Report) ([]byte, error) {
		return []byte(r.Scenarios[0].Name), nil
	}}
	out, err := custom.Format(buildTestReport())
	require.NoError(t, err)
	assert.Equal(t, "Bumpy", string(out))
	assert.Equal(t, "names", custom.Name())
}
