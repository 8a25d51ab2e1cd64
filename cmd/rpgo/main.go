package main

import (
	"fmt"
	"log"
	"os"

	"github.com/rpgo/retirement-optimizer/internal/calculation"
	"github.com/rpgo/retirement-optimizer/internal/config"
	"github.com/rpgo/retirement-optimizer/internal/output"
	"github.com/spf13/cobra"
)

// app carries the state shared by every subcommand of one invocation.
type app struct {
	verbose bool
	logger  calculation.Logger
	engine  *calculation.CalculationEngine
	parser  *config.InputParser
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{
		logger: calculation.NopLogger{},
		engine: calculation.NewCalculationEngine(),
		parser: config.NewInputParser(),
	}

	root := &cobra.Command{
		Use:   "rpgo",
		Short: "Retirement optimizer",
		Long: `rpgo projects savings growth, counts how long a retirement balance lasts,
and solves the largest sustainable annual withdrawal.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.logger = calculation.NewStdLogger(log.New(cmd.ErrOrStderr(), "", log.LstdFlags), a.verbose)
			a.engine.SetLogger(a.logger)
			a.engine.Debug = a.verbose
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		a.fixedCmd(),
		a.variableCmd(),
		a.longevityCmd(),
		a.withdrawalCmd(),
		a.runCmd(),
		a.validateCmd(),
		a.exampleConfigCmd(),
		a.interactiveCmd(),
		a.serveCmd(),
	)
	return root
}

func (a *app) runCmd() *cobra.Command {
	var format, outputDir string

	cmd := &cobra.Command{
		Use:   "run [config-file]",
		Short: "Run every scenario in a configuration file",
		Long: `Run every scenario in a YAML configuration file and render the report.
Without --output-dir the report is printed; with it, a timestamped file is written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.parser.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			a.logger.Infof("loaded %d scenarios from %s", len(cfg.Scenarios), args[0])

			report, err := a.engine.RunScenarios(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			report.Assumptions = output.GenerateAssumptions(cfg)

			if outputDir != "" {
				paths, err := output.GenerateReport(report, format, outputDir)
				if err != nil {
					return err
				}
				for _, p := range paths {
					fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", p)
				}
				return nil
			}

			if output.NormalizeFormatName(format) == "all" {
				return fmt.Errorf("format %q requires --output-dir", format)
			}
			f := output.GetFormatterByName(format)
			if f == nil {
				return fmt.Errorf("%w: %q", output.ErrUnsupportedFormat, format)
			}
			body, err := f.Format(report)
			if err != nil {
				return fmt.Errorf("failed to format report: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(body)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "console", "report format (console, console-lite, csv, detailed-csv, json, html, all)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "write the report into this directory")
	return cmd
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [config-file]",
		Short: "Validate a configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.parser.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration is valid: %d scenarios\n", len(cfg.Scenarios))
			for _, sc := range cfg.Scenarios {
				fmt.Fprintf(cmd.OutOrStdout(), "  - %s (%s)\n", sc.Name, sc.Kind)
			}
			return nil
		},
	}
}

func (a *app) exampleConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example-config [path]",
		Short: "Write an example configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "example_config.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if err := output.SaveConfiguration(a.parser.CreateExampleConfiguration(), path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example configuration written to %s\n", path)
			return nil
		},
	}
}
