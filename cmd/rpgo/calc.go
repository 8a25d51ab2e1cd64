package main

import (
	"fmt"
	"strings"

	"github.com/rpgo/retirement-optimizer/internal/config"
	"github.com/rpgo/retirement-optimizer/internal/domain"
	"github.com/rpgo/retirement-optimizer/internal/output"
	"github.com/rpgo/retirement-optimizer/pkg/decimal"
	shopspring "github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// decimalValue is a flag holding a decimal amount. Currency notation such as
// "$1,250" is accepted.
type decimalValue struct{ d *shopspring.Decimal }

func (v decimalValue) String() string {
	if v.d == nil {
		return "0"
	}
	return v.d.String()
}

func (v decimalValue) Set(s string) error {
	m, err := decimal.NewMoneyFromString(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid number %q", s)
	}
	*v.d = m.Decimal
	return nil
}

func (v decimalValue) Type() string { return "decimal" }

func decimalFlag(cmd *cobra.Command, p *shopspring.Decimal, name, usage string) {
	cmd.Flags().Var(decimalValue{p}, name, usage)
}

// runOne validates a single scenario, runs it and prints the result block.
func (a *app) runOne(cmd *cobra.Command, cfg *domain.Configuration, sc *domain.Scenario) error {
	if err := a.parser.ValidateScenario(sc); err != nil {
		return err
	}
	result, err := a.engine.RunScenario(cmd.Context(), cfg, sc)
	if err != nil {
		return err
	}
	output.WriteResult(cmd.OutOrStdout(), result)
	return nil
}

func (a *app) fixedCmd() *cobra.Command {
	sc := domain.Scenario{Name: "Fixed Growth", Kind: domain.KindFixedGrowth}

	cmd := &cobra.Command{
		Use:   "fixed",
		Short: "Project a balance at a constant annual rate",
		Example: `  rpgo fixed --principal 10000 --rate 0.05 --years 10
  rpgo fixed --principal 10000 --rate 0.05 --contribution 6000 --years 25`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runOne(cmd, &domain.Configuration{}, &sc)
		},
	}
	decimalFlag(cmd, &sc.Principal, "principal", "initial principal")
	decimalFlag(cmd, &sc.Rate, "rate", "annual rate as a fraction (0.05 = 5%)")
	decimalFlag(cmd, &sc.Contribution, "contribution", "amount added at the end of every year")
	cmd.Flags().IntVar(&sc.Years, "years", 0, "years to project")
	return cmd
}

func (a *app) variableCmd() *cobra.Command {
	sc := domain.Scenario{Name: "Variable Growth", Kind: domain.KindVariableGrowth}
	var rates, dataPath string

	cmd := &cobra.Command{
		Use:   "variable",
		Short: "Project a balance through one rate per year",
		Example: `  rpgo variable --principal 10000 --rates "0.10, 0.05, -0.02" --contribution 500
  rpgo variable --principal 10000 --rates-file data/sp500_returns.csv --from-year 2000 --years 20`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rates != "" {
				parsed, err := config.ParseRateList(rates)
				if err != nil {
					return err
				}
				sc.Rates = parsed
			}
			cfg := &domain.Configuration{Assumptions: domain.Assumptions{DataPath: dataPath}}
			return a.runOne(cmd, cfg, &sc)
		},
	}
	decimalFlag(cmd, &sc.Principal, "principal", "starting principal")
	decimalFlag(cmd, &sc.Contribution, "contribution", "amount added at the end of every year")
	cmd.Flags().StringVar(&rates, "rates", "", "comma-separated annual rates, e.g. \"0.10, 0.05, -0.02\"")
	cmd.Flags().StringVar(&sc.RatesFile, "rates-file", "", "CSV of Year,Return rows")
	cmd.Flags().IntVar(&sc.RatesFromYear, "from-year", 0, "first calendar year taken from the rates file")
	cmd.Flags().IntVar(&sc.Years, "years", 0, "limit the number of years (0 = every rate)")
	cmd.Flags().StringVar(&dataPath, "data-path", "", "base directory for a relative rates file")
	cmd.MarkFlagsMutuallyExclusive("rates", "rates-file")
	return cmd
}

func (a *app) longevityCmd() *cobra.Command {
	sc := domain.Scenario{Name: "Retirement Longevity", Kind: domain.KindLongevity}

	cmd := &cobra.Command{
		Use:     "longevity",
		Short:   "Count the years a balance survives a fixed annual expense",
		Example: `  rpgo longevity --balance 500000 --expense 30000 --rate 0.04`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runOne(cmd, &domain.Configuration{}, &sc)
		},
	}
	decimalFlag(cmd, &sc.Principal, "balance", "starting retirement balance")
	decimalFlag(cmd, &sc.Expense, "expense", "annual withdrawal taken after growth")
	decimalFlag(cmd, &sc.Rate, "rate", "post-retirement growth rate")
	return cmd
}

func (a *app) withdrawalCmd() *cobra.Command {
	sc := domain.Scenario{Name: "Optimal Withdrawal", Kind: domain.KindMaxWithdrawal}

	cmd := &cobra.Command{
		Use:     "withdrawal",
		Short:   "Solve the largest annual withdrawal lasting the target years",
		Example: `  rpgo withdrawal --balance 1000000 --rate 0.05 --target-years 30`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runOne(cmd, &domain.Configuration{}, &sc)
		},
	}
	decimalFlag(cmd, &sc.Principal, "balance", "starting retirement balance")
	decimalFlag(cmd, &sc.Rate, "rate", "expected average growth rate")
	cmd.Flags().IntVar(&sc.TargetYears, "target-years", 0, "retirement length in years (0 = 30)")
	return cmd
}
