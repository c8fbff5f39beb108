// Package orchestration coordinates the concurrent execution of one or more
// π computations and the analysis of their results.
package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/xmb505/SuperPi/internal/cli"
	"github.com/xmb505/SuperPi/internal/config"
	apperrors "github.com/xmb505/SuperPi/internal/errors"
	"github.com/xmb505/SuperPi/internal/pi"
	"github.com/xmb505/SuperPi/internal/ui"
)

// CalculationResult encapsulates the outcome of a single computation. It is a
// standardized container for results from different algorithms, facilitating
// cross-checking and reporting.
type CalculationResult struct {
	// Name is the identifier of the algorithm used (e.g., "Gauss-Legendre").
	Name string
	// Digits is the computed fractional digit string. Empty if an error occurred.
	Digits string
	// Duration is the time taken to complete the computation.
	Duration time.Duration
	// Err contains any error that occurred during the computation.
	Err error
}

// ProgressBufferMultiplier defines the buffer size multiplier for the
// progress channel. A larger buffer reduces the likelihood of blocking
// computation goroutines when the UI is slow to consume updates.
const ProgressBufferMultiplier = 5

// ExecuteCalculations orchestrates the concurrent execution of one or more π
// computations. It manages the lifecycle of the computation goroutines,
// collects their results, and coordinates the display of progress updates.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - calculators: The calculators to execute.
//   - cfg: The application configuration.
//   - out: The io.Writer for displaying progress updates.
//
// Returns:
//   - []CalculationResult: The results of each computation, in input order.
func ExecuteCalculations(ctx context.Context, calculators []pi.Calculator, cfg config.AppConfig, out io.Writer) []CalculationResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]CalculationResult, len(calculators))
	progressChan := make(chan pi.ProgressUpdate, len(calculators)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	if cfg.Quiet {
		go drainProgress(&displayWg, progressChan)
	} else {
		go cli.DisplayProgress(&displayWg, progressChan, len(calculators), out)
	}

	for i, calc := range calculators {
		idx, calculator := i, calc
		g.Go(func() error {
			startTime := time.Now()
			digits, err := calculator.Calculate(ctx, progressChan, idx, cfg.Digits, cfg.ToCalculationOptions())
			results[idx] = CalculationResult{
				Name: calculator.Name(), Digits: digits, Duration: time.Since(startTime), Err: err,
			}
			return nil
		})
	}

	g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// drainProgress consumes and discards progress updates in quiet mode so the
// non-blocking sends in the kernels stay cheap.
func drainProgress(wg *sync.WaitGroup, progressChan <-chan pi.ProgressUpdate) {
	defer wg.Done()
	for range progressChan {
	}
}

// AnalyzeComparisonResults processes the results from multiple algorithms and
// generates a summary report. It sorts the results by execution time, checks
// that every successful computation produced the identical digit string, and
// displays a comparative table. Any disagreement between digit strings is a
// critical failure: two independent methods cannot both be right and differ.
//
// Parameters:
//   - results: The slice of computation results to analyze.
//   - cfg: The application configuration.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeComparisonResults(results []CalculationResult, cfg config.AppConfig, out io.Writer) int {
	sort.Slice(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstValid *CalculationResult
	var firstError error
	successCount := 0

	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "%sAlgorithm%s\t%sDuration%s\t%sStatus%s\n",
		ui.ColorBold(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset())

	for i := range results {
		res := &results[i]
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
			if firstError == nil {
				firstError = res.Err
			}
		} else {
			status = fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
			successCount++
			if firstValid == nil {
				firstValid = res
			}
		}
		duration := cli.FormatExecutionDuration(res.Duration)
		if res.Duration == 0 {
			duration = "< 1µs"
		}
		fmt.Fprintf(tw, "%s%s%s\t%s%s%s\t%s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(),
			ui.ColorYellow(), duration, ui.ColorReset(),
			status)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(out, "Warning: failed to flush tabwriter: %v\n", err)
	}

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No algorithm could complete the computation.\n")
		return apperrors.HandleCalculationError(firstError, 0, out, cli.CLIColorProvider{})
	}

	for i := range results {
		res := &results[i]
		if res.Err == nil && res.Digits != firstValid.Digits {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! The algorithms disagree on the digits of pi.\n")
			return apperrors.ExitErrorMismatch
		}
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	cli.DisplayResult(firstValid.Digits, firstValid.Duration, cfg.Verbose, out)
	return apperrors.ExitSuccess
}
