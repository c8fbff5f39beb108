// The cli package provides functions for building the command-line interface
// of the π computation application. It handles the asynchronous display of
// computation progress and formats the results for readable presentation.
package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/xmb505/SuperPi/internal/pi"
	"github.com/xmb505/SuperPi/internal/ui"
)

const (
	// TruncationLimit is the digit threshold from which the digit string is
	// truncated in standard output to avoid cluttering the terminal.
	TruncationLimit = 100
	// DisplayEdges specifies the number of digits shown at the beginning and
	// end of a truncated digit string.
	DisplayEdges = 25
	// ProgressRefreshRate defines the refresh frequency of the progress bar.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// FormatExecutionDuration formats a time.Duration for display. It shows
// microseconds for durations under a millisecond and milliseconds for
// durations under a second, which reads better for short runs.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// Spinner abstracts the behavior of a terminal spinner, decoupling
// DisplayProgress from a specific spinner implementation for easier testing.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) { rs.s.Suffix = suffix }

var newSpinner = func(options ...spinner.Option) Spinner {
	// Same interval as ProgressRefreshRate to keep redraws synchronized.
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// ProgressState aggregates the progress of concurrent computations. It keeps
// the individual progress of each calculator and derives the average for the
// consolidated progress bar, plus a crude ETA from the observed rate.
type ProgressState struct {
	progresses     []float64
	numCalculators int
	start          time.Time
}

// NewProgressState creates a progress state tracking the given number of
// calculators.
func NewProgressState(numCalculators int) *ProgressState {
	return &ProgressState{
		progresses:     make([]float64, numCalculators),
		numCalculators: numCalculators,
		start:          time.Now(),
	}
}

// Update records a new progress value for a specific calculator. Updates with
// an out-of-range index are ignored.
func (ps *ProgressState) Update(index int, value float64) {
	if index >= 0 && index < len(ps.progresses) {
		ps.progresses[index] = value
	}
}

// CalculateAverage computes the average progress across all tracked
// calculators.
func (ps *ProgressState) CalculateAverage() float64 {
	var total float64
	for _, p := range ps.progresses {
		total += p
	}
	if ps.numCalculators == 0 {
		return 0.0
	}
	return total / float64(ps.numCalculators)
}

// ETA estimates the remaining duration by linear extrapolation of the average
// progress. Returns a negative duration while no estimate is available.
func (ps *ProgressState) ETA() time.Duration {
	avg := ps.CalculateAverage()
	if avg <= 0 {
		return -1
	}
	elapsed := time.Since(ps.start)
	remaining := time.Duration(float64(elapsed) * (1 - avg) / avg)
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// FormatETA renders an ETA for the progress line.
func FormatETA(eta time.Duration) string {
	switch {
	case eta < 0:
		return "--"
	case eta < time.Second:
		return "< 1s"
	default:
		return eta.Round(time.Second).String()
	}
}

// progressBar generates a textual progress bar of the given character width.
func progressBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}

// DisplayProgress manages the asynchronous display of a spinner and progress
// bar. It is designed to run in a dedicated goroutine for the duration of the
// computations: it receives updates from progressChan, aggregates them into an
// average with ETA, refreshes the terminal periodically, and shuts down when
// the channel is closed.
//
// Parameters:
//   - wg: A WaitGroup to signal when the display routine is complete.
//   - progressChan: The channel receiving progress updates.
//   - numCalculators: The number of calculators contributing to the progress.
//   - out: The io.Writer to which the progress bar is rendered.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan pi.ProgressUpdate, numCalculators int, out io.Writer) {
	defer wg.Done()
	if numCalculators <= 0 {
		for range progressChan { // Drain the channel
		}
		return
	}

	state := NewProgressState(numCalculators)
	s := newSpinner(spinner.WithWriter(out))
	s.Start()
	spinnerStopped := false
	defer func() {
		if !spinnerStopped {
			s.Stop()
		}
	}()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	label := "Progress"
	if numCalculators > 1 {
		label = "Avg progress"
	}

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				// Stop the spinner first to free the line, then print the
				// final 100% bar with a newline so it persists.
				if !spinnerStopped {
					s.Stop()
					spinnerStopped = true
				}
				bar := progressBar(1.0, ProgressBarWidth)
				fmt.Fprintf(out, "%s: %6.2f%% [%s] ETA: %s\n", label, 100.0, bar, "< 1s")
				return
			}
			state.Update(update.CalculatorIndex, update.Value)
		case <-ticker.C:
			avgProgress := state.CalculateAverage()
			bar := progressBar(avgProgress, ProgressBarWidth)
			s.UpdateSuffix(fmt.Sprintf(" %s: %6.2f%% [%s] ETA: %s", label, avgProgress*100, bar, FormatETA(state.ETA())))
		}
	}
}

// DisplayResult formats and prints a computed digit string. For long digit
// strings the output is truncated unless verbose is true.
//
// Parameters:
//   - digits: The fractional digit string of π.
//   - duration: The time taken for the computation.
//   - verbose: If true, prints the full digit string regardless of size.
//   - out: The io.Writer for the output.
func DisplayResult(digits string, duration time.Duration, verbose bool, out io.Writer) {
	numDigits := len(digits)
	fmt.Fprintf(out, "Computed %s%s%s fractional digits of pi in %s%s%s.\n",
		ui.ColorCyan(), formatNumberString(fmt.Sprintf("%d", numDigits)), ui.ColorReset(),
		ui.ColorGreen(), FormatExecutionDuration(duration), ui.ColorReset())

	if rate := DigitsPerSecond(uint64(numDigits), duration); rate > 0 {
		fmt.Fprintf(out, "Throughput: %s%s digits/s%s\n",
			ui.ColorCyan(), formatNumberString(fmt.Sprintf("%.0f", rate)), ui.ColorReset())
	}

	if verbose || numDigits <= TruncationLimit {
		fmt.Fprintf(out, "pi = %s3.%s%s\n", ui.ColorGreen(), digits, ui.ColorReset())
		return
	}
	fmt.Fprintf(out, "pi (truncated) = %s3.%s...%s%s\n",
		ui.ColorGreen(), digits[:DisplayEdges], digits[numDigits-DisplayEdges:], ui.ColorReset())
	fmt.Fprintf(out, "(Tip: use the %s-v%s option to display the full value)\n", ui.ColorYellow(), ui.ColorReset())
}

// DigitsPerSecond returns the digit throughput of a run, or 0 when the
// duration is too small to be meaningful.
func DigitsPerSecond(digits uint64, duration time.Duration) float64 {
	if duration <= 0 {
		return 0
	}
	return float64(digits) / duration.Seconds()
}

// formatNumberString inserts thousand separators into a numeric string.
func formatNumberString(s string) string {
	if len(s) == 0 {
		return ""
	}
	// Separate any fractional part first.
	intPart, fracPart := s, ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		intPart, fracPart = s[:dot], s[dot:]
	}

	n := len(intPart)
	if n <= 3 {
		return intPart + fracPart
	}

	numSeparators := (n - 1) / 3
	var builder strings.Builder
	builder.Grow(n + numSeparators + len(fracPart))

	firstGroupLen := n % 3
	if firstGroupLen == 0 {
		firstGroupLen = 3
	}
	builder.WriteString(intPart[:firstGroupLen])
	for i := firstGroupLen; i < n; i += 3 {
		builder.WriteByte(',')
		builder.WriteString(intPart[i : i+3])
	}
	builder.WriteString(fracPart)
	return builder.String()
}
