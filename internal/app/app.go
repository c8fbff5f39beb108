package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/xmb505/SuperPi/internal/cli"
	"github.com/xmb505/SuperPi/internal/config"
	apperrors "github.com/xmb505/SuperPi/internal/errors"
	"github.com/xmb505/SuperPi/internal/orchestration"
	"github.com/xmb505/SuperPi/internal/pi"
	"github.com/xmb505/SuperPi/internal/server"
	"github.com/xmb505/SuperPi/internal/ui"
)

// Application represents the superpi application instance. It encapsulates
// the configuration and provides methods to run the application in its
// various modes (CLI, server).
type Application struct {
	// Config holds the parsed application configuration.
	Config config.AppConfig
	// Factory provides access to the calculator implementations. Uses the
	// interface type for better testability and dependency injection.
	Factory pi.CalculatorFactory
	// ErrWriter is the writer for error output (typically os.Stderr).
	ErrWriter io.Writer
}

// New creates a new Application instance by parsing command-line arguments.
// It validates the configuration and returns an error if parsing or
// validation fails.
//
// Parameters:
//   - args: The command-line arguments (typically os.Args).
//   - errWriter: The writer for error output.
//
// Returns:
//   - *Application: A new application instance.
//   - error: An error if configuration parsing or validation fails.
func New(args []string, errWriter io.Writer) (*Application, error) {
	factory := pi.GlobalFactory()
	availableAlgos := factory.List()

	// args[0] is program name, args[1:] are the actual arguments
	programName := "superpi"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, availableAlgos)
	if err != nil {
		return nil, err
	}

	return &Application{
		Config:    cfg,
		Factory:   factory,
		ErrWriter: errWriter,
	}, nil
}

// IsHelpError checks if the error is a help flag error (--help was used),
// meaning the application should exit with success after displaying help.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// Run executes the application based on the configured mode, dispatching to
// the server or CLI handler.
//
// Parameters:
//   - ctx: The context for managing cancellation and timeouts.
//   - out: The writer for standard output.
//
// Returns:
//   - int: An exit code (0 for success, non-zero for errors).
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	// Initialize CLI theme (respects -no-color flag and NO_COLOR env var)
	ui.InitTheme(a.Config.NoColor)

	if a.Config.ServerMode {
		return a.runServer()
	}

	return a.runCalculate(ctx, out)
}

// runServer starts the HTTP server mode.
func (a *Application) runServer() int {
	srv := server.NewServer(a.Factory, a.Config)
	if err := srv.Start(); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runCalculate orchestrates the execution of the CLI computation command.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	// Setup lifecycle (timeout + signals)
	ctx, cancels := SetupLifecycle(ctx, a.Config.Timeout)
	defer cancels.Cleanup()

	calculatorsToRun := cli.GetCalculatorsToRun(a.Config, a.Factory)
	if len(calculatorsToRun) == 0 {
		fmt.Fprintf(a.ErrWriter, "No calculator available for algorithm %q\n", a.Config.Algo)
		return apperrors.ExitErrorConfig
	}

	if !a.Config.JSONOutput && !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(calculatorsToRun, out)
	}

	results := orchestration.ExecuteCalculations(ctx, calculatorsToRun, a.Config, out)

	if a.Config.JSONOutput {
		return printJSONResults(results, out)
	}

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.ResolvedOutputFile(),
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
	}

	return a.analyzeResultsWithOutput(results, outputCfg, out)
}

func (a *Application) analyzeResultsWithOutput(results []orchestration.CalculationResult, outputCfg cli.OutputConfig, out io.Writer) int {
	bestResult := findBestResult(results)
	if bestResult != nil {
		outputCfg.Algorithm = bestResult.Name
	}

	// Quiet mode short-circuits the comparison report for a bare digit line.
	if outputCfg.Quiet && bestResult != nil {
		cli.DisplayQuietResult(out, bestResult.Digits)
		if err := a.saveResultIfNeeded(bestResult, outputCfg); err != nil {
			return apperrors.ExitErrorGeneric
		}
		return apperrors.ExitSuccess
	}

	// Single-algorithm failures go straight to the error handler so timeouts
	// and cancellations map to their distinct exit codes.
	if len(results) == 1 && results[0].Err != nil {
		return apperrors.HandleCalculationError(results[0].Err, results[0].Duration, out, cli.CLIColorProvider{})
	}

	exitCode := orchestration.AnalyzeComparisonResults(results, a.Config, out)

	if bestResult != nil && exitCode == apperrors.ExitSuccess {
		if err := a.saveResultIfNeeded(bestResult, outputCfg); err != nil {
			return apperrors.ExitErrorGeneric
		}
		if outputCfg.OutputFile != "" {
			fmt.Fprintf(out, "\n%s✓ Digits saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), outputCfg.OutputFile, ui.ColorReset())
		}
	}

	return exitCode
}

func findBestResult(results []orchestration.CalculationResult) *orchestration.CalculationResult {
	var bestResult *orchestration.CalculationResult
	for i := range results {
		if results[i].Err == nil {
			if bestResult == nil || results[i].Duration < bestResult.Duration {
				bestResult = &results[i]
			}
		}
	}
	return bestResult
}

func (a *Application) saveResultIfNeeded(res *orchestration.CalculationResult, cfg cli.OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}
	if err := cli.WritePiFile(cfg.OutputFile, res.Digits, res.Duration, res.Name); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving digits: %v\n", err)
		return err
	}
	return nil
}

// jsonResult represents a single computation result in JSON format.
type jsonResult struct {
	Algorithm string `json:"algorithm"`
	Duration  string `json:"duration"`
	Digits    uint64 `json:"digits,omitempty"`
	Pi        string `json:"pi,omitempty"`
	Error     string `json:"error,omitempty"`
}

// printJSONResults formats the computation results as a JSON array for
// programmatic consumption.
func printJSONResults(results []orchestration.CalculationResult, out io.Writer) int {
	output := make([]jsonResult, len(results))
	for i, res := range results {
		jr := jsonResult{
			Algorithm: res.Name,
			Duration:  res.Duration.String(),
		}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		} else {
			jr.Digits = uint64(len(res.Digits))
			jr.Pi = "3." + res.Digits
		}
		output[i] = jr
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(output); err != nil {
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}
