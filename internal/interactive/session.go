package interactive

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rpgo/retirement-optimizer/internal/calculation"
	"github.com/rpgo/retirement-optimizer/internal/config"
	"github.com/rpgo/retirement-optimizer/internal/domain"
	"github.com/rpgo/retirement-optimizer/internal/output"
	"github.com/rpgo/retirement-optimizer/pkg/decimal"
	shopspring "github.com/shopspring/decimal"
)

const banner = "====================================================="

// Session runs the numbered text menu over a reader and writer.
type Session struct {
	in     *bufio.Scanner
	out    io.Writer
	engine *calculation.CalculationEngine
	parser *config.InputParser
}

func NewSession(in io.Reader, out io.Writer, engine *calculation.CalculationEngine) *Session {
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}
	return &Session{
		in:     bufio.NewScanner(in),
		out:    out,
		engine: engine,
		parser: config.NewInputParser(),
	}
}

// Run shows the menu until the user exits or input ends. End of input is not an error.
func (s *Session) Run(ctx context.Context) error {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, banner)
	fmt.Fprintln(s.out, "Welcome to the Retirement Optimization System")
	fmt.Fprintln(s.out, banner)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.printMenu()
		choice, err := s.readLine("Enter your choice (1-5): ")
		if err != nil {
			return endOfInput(err)
		}

		switch strings.TrimSpace(choice) {
		case "1":
			err = s.runFixed(ctx)
		case "2":
			err = s.runVariable(ctx)
		case "3":
			err = s.runLongevity(ctx)
		case "4":
			err = s.runWithdrawal(ctx)
		case "5":
			fmt.Fprintln(s.out, "\nThank you for using the Retirement Optimizer. Goodbye!")
			return nil
		default:
			fmt.Fprintln(s.out, "\n[ERROR] Invalid selection. Please enter a number between 1 and 5.")
		}
		if err != nil {
			return endOfInput(err)
		}
	}
}

func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (s *Session) printMenu() {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "======================= MENU ========================")
	fmt.Fprintln(s.out, "Please select the financial model you wish to execute:")
	fmt.Fprintln(s.out, "1. Fixed Growth Simulation")
	fmt.Fprintln(s.out, "2. Variable Growth Simulation")
	fmt.Fprintln(s.out, "3. Retirement Longevity")
	fmt.Fprintln(s.out, "4. Optimal Withdrawal Calculation")
	fmt.Fprintln(s.out, "5. Exit Application")
	fmt.Fprintln(s.out, banner)
}

func (s *Session) runFixed(ctx context.Context) error {
	fmt.Fprintln(s.out, "\n--- 1. Fixed Growth Simulation ---")
	sc := domain.Scenario{Name: "Fixed Growth", Kind: domain.KindFixedGrowth}

	var err error
	if sc.Principal, err = s.readAmount("   Enter Initial Principal ($): "); err != nil {
		return err
	}
	if sc.Rate, err = s.readNumber("   Enter Annual Interest Rate (e.g., 0.05 for 5%): "); err != nil {
		return err
	}
	if sc.Contribution, err = s.readAmount("   Enter Annual Contribution ($): "); err != nil {
		return err
	}
	if sc.Years, err = s.readInt("   Enter Years to Retirement: "); err != nil {
		return err
	}
	return s.run(ctx, &sc)
}

func (s *Session) runVariable(ctx context.Context) error {
	fmt.Fprintln(s.out, "\n--- 2. Variable Growth Simulation ---")
	sc := domain.Scenario{Name: "Variable Growth", Kind: domain.KindVariableGrowth}

	var err error
	if sc.Principal, err = s.readAmount("   Enter Starting Principal ($): "); err != nil {
		return err
	}
	if sc.Contribution, err = s.readAmount("   Enter Annual Contribution ($): "); err != nil {
		return err
	}
	line, err := s.readLine("   Enter Annual Rates (comma-separated, e.g., 0.10, 0.05, -0.02): ")
	if err != nil {
		return err
	}
	if sc.Rates, err = config.ParseRateList(line); err != nil {
		fmt.Fprintln(s.out, "\n[ERROR] Invalid rate list format. Please ensure all values are numbers.")
		return nil
	}
	return s.run(ctx, &sc)
}

func (s *Session) runLongevity(ctx context.Context) error {
	fmt.Fprintln(s.out, "\n--- 3. Retirement Expense Simulation ---")
	sc := domain.Scenario{Name: "Retirement Longevity", Kind: domain.KindLongevity}

	var err error
	if sc.Principal, err = s.readAmount("   Enter Starting Retirement Balance ($): "); err != nil {
		return err
	}
	if sc.Expense, err = s.readAmount("   Enter Annual Withdrawal/Expense ($): "); err != nil {
		return err
	}
	if sc.Rate, err = s.readNumber("   Enter Post-Retirement Growth Rate (e.g., 0.04): "); err != nil {
		return err
	}
	return s.run(ctx, &sc)
}

func (s *Session) runWithdrawal(ctx context.Context) error {
	fmt.Fprintln(s.out, "\n--- 4. Optimal Withdrawal Calculation ---")
	sc := domain.Scenario{Name: "Optimal Withdrawal", Kind: domain.KindMaxWithdrawal}

	var err error
	if sc.Principal, err = s.readAmount("   Enter Starting Retirement Balance ($): "); err != nil {
		return err
	}
	if sc.Rate, err = s.readNumber("   Enter Expected Average Growth Rate (e.g., 0.05): "); err != nil {
		return err
	}
	if sc.TargetYears, err = s.readInt("   Enter Target Retirement Length (Years, e.g., 30): "); err != nil {
		return err
	}
	return s.run(ctx, &sc)
}

// run validates and calculates one scenario. Validation and calculation errors
// are reported inline and the menu continues.
func (s *Session) run(ctx context.Context, sc *domain.Scenario) error {
	if err := s.parser.ValidateScenario(sc); err != nil {
		fmt.Fprintf(s.out, "\n[ERROR] %v\n", err)
		return nil
	}
	result, err := s.engine.RunScenario(ctx, &domain.Configuration{}, sc)
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		fmt.Fprintf(s.out, "\n[ERROR] %v\n", err)
		return nil
	}
	fmt.Fprintln(s.out)
	output.WriteResult(s.out, result)
	return nil
}

func (s *Session) readLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.in.Text(), nil
}

// readNumber prompts until a number is entered.
func (s *Session) readNumber(prompt string) (shopspring.Decimal, error) {
	for {
		line, err := s.readLine(prompt)
		if err != nil {
			return shopspring.Decimal{}, err
		}
		v, err := shopspring.NewFromString(strings.TrimSpace(line))
		if err == nil {
			return v, nil
		}
		fmt.Fprintln(s.out, "\n[ERROR] Invalid input. Please enter a numerical value.")
	}
}

// readAmount is readNumber that also accepts currency notation ("$1,250.00").
func (s *Session) readAmount(prompt string) (shopspring.Decimal, error) {
	for {
		line, err := s.readLine(prompt)
		if err != nil {
			return shopspring.Decimal{}, err
		}
		m, err := decimal.NewMoneyFromString(strings.TrimSpace(line))
		if err == nil {
			return m.Decimal, nil
		}
		fmt.Fprintln(s.out, "\n[ERROR] Invalid input. Please enter a numerical value.")
	}
}

// readInt reads a number and truncates it to whole years.
func (s *Session) readInt(prompt string) (int, error) {
	v, err := s.readNumber(prompt)
	if err != nil {
		return 0, err
	}
	return int(v.IntPart()), nil
}
