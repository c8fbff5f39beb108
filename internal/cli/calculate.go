package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/xmb505/SuperPi/internal/config"
	"github.com/xmb505/SuperPi/internal/pi"
	"github.com/xmb505/SuperPi/internal/ui"
)

// CLIColorProvider supplies terminal colors from the active theme to the
// error handler, which cannot import this package directly.
type CLIColorProvider struct{}

// Yellow returns the warning color from the current theme.
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }

// Reset returns the reset escape code from the current theme.
func (CLIColorProvider) Reset() string { return ui.ColorReset() }

// GetCalculatorsToRun determines which calculators should be executed based
// on the configuration. Returns calculators in alphabetically sorted order
// for consistent, reproducible behavior.
//
// Parameters:
//   - cfg: The application configuration containing the algorithm selection.
//   - factory: The calculator factory to retrieve implementations from.
//
// Returns:
//   - []pi.Calculator: A slice of calculators to execute.
func GetCalculatorsToRun(cfg config.AppConfig, factory pi.CalculatorFactory) []pi.Calculator {
	if cfg.Algo == "all" {
		keys := factory.List() // List() returns sorted keys
		calculators := make([]pi.Calculator, 0, len(keys))
		for _, k := range keys {
			if calc, err := factory.Get(k); err == nil {
				calculators = append(calculators, calc)
			}
		}
		return calculators
	}
	if calc, err := factory.Get(cfg.Algo); err == nil {
		return []pi.Calculator{calc}
	}
	return nil
}

// PrintExecutionConfig displays the current execution configuration: the
// digit target, the working precision it implies, the timeout, and the
// environment.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	timeoutStr := "none"
	if cfg.Timeout > 0 {
		timeoutStr = cfg.Timeout.String()
	}
	fmt.Fprintf(out, "Computing %s%s%s fractional digits of pi with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), formatNumberString(fmt.Sprintf("%d", cfg.Digits)), ui.ColorReset(),
		ui.ColorYellow(), timeoutStr, ui.ColorReset())
	fmt.Fprintf(out, "Working precision: %s%s%s bits.\n",
		ui.ColorCyan(), formatNumberString(fmt.Sprintf("%d", pi.PlanPrecision(cfg.Digits, cfg.PrecisionMargin))), ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
}

// PrintExecutionMode displays the execution mode (single algorithm vs
// cross-check of all algorithms).
//
// Parameters:
//   - calculators: The slice of calculators that will be executed.
//   - out: The writer for standard output.
func PrintExecutionMode(calculators []pi.Calculator, out io.Writer) {
	var modeDesc string
	if len(calculators) > 1 {
		modeDesc = "Parallel cross-check of all algorithms"
	} else {
		modeDesc = fmt.Sprintf("Single computation with the %s%s%s algorithm",
			ui.ColorGreen(), calculators[0].Name(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
