// Package cli provides output utilities for exporting computed digits.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/xmb505/SuperPi/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path the digit file is written to (empty disables
	// file output).
	OutputFile string
	// Algorithm is the name of the numerical method that produced the digits.
	Algorithm string
	// Quiet mode suppresses informational output.
	Quiet bool
	// Verbose shows the full digit string on the terminal.
	Verbose bool
}

// digitLineWidth is the number of digit characters per line in the digit
// file, keeping multi-megabyte files usable in ordinary editors.
const digitLineWidth = 100

// WritePiFile writes the computed digits to a file: the value as "3." followed
// by the fractional digits wrapped at a fixed width, then a blank line and a
// metadata footer.
//
// Parameters:
//   - path: The destination file path.
//   - digits: The fractional digit string.
//   - duration: The computation duration.
//   - algo: The algorithm name used.
//
// Returns:
//   - error: An error if the file cannot be written.
func WritePiFile(path, digits string, duration time.Duration, algo string) error {
	if path == "" {
		return nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if err := writeDigitBody(w, digits); err != nil {
		return fmt.Errorf("failed to write digits: %w", err)
	}

	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "# Generated by superpi\n")
	fmt.Fprintf(w, "# Date: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(w, "# Algorithm: %s\n", algo)
	fmt.Fprintf(w, "# Digits: %d\n", len(digits))
	fmt.Fprintf(w, "# Duration: %s\n", duration)
	if rate := DigitsPerSecond(uint64(len(digits)), duration); rate > 0 {
		fmt.Fprintf(w, "# Throughput: %.0f digits/s\n", rate)
	}

	return w.Flush()
}

// writeDigitBody writes "3." and the digit string wrapped at digitLineWidth
// characters per line. The first line carries "3." plus the first group so
// the value can still be read straight off the top of the file.
func writeDigitBody(w io.Writer, digits string) error {
	if _, err := fmt.Fprint(w, "3."); err != nil {
		return err
	}
	for len(digits) > digitLineWidth {
		if _, err := fmt.Fprintln(w, digits[:digitLineWidth]); err != nil {
			return err
		}
		digits = digits[digitLineWidth:]
	}
	_, err := fmt.Fprintln(w, digits)
	return err
}

// DisplayQuietResult outputs the bare digit string for scripting: "3."
// followed by every fractional digit, nothing else.
func DisplayQuietResult(out io.Writer, digits string) {
	fmt.Fprintf(out, "3.%s\n", digits)
}

// DisplayResultWithConfig displays a result with the given output
// configuration, handling quiet mode and optional file export.
//
// Parameters:
//   - out: The output writer.
//   - digits: The fractional digit string.
//   - duration: The computation duration.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if file output fails.
func DisplayResultWithConfig(out io.Writer, digits string, duration time.Duration, config OutputConfig) error {
	if config.Quiet {
		DisplayQuietResult(out, digits)
	} else {
		DisplayResult(digits, duration, config.Verbose, out)
	}

	if config.OutputFile != "" {
		if err := WritePiFile(config.OutputFile, digits, duration, config.Algorithm); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "\n%s✓ Digits saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
		}
	}

	return nil
}
