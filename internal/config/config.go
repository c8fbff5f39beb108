// Package config provides the configuration management for the superpi
// application. It defines the configuration data structure, handles the
// parsing of command-line arguments, and validates the resulting values.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/xmb505/SuperPi/internal/errors"
	"github.com/xmb505/SuperPi/internal/pi"
)

const (
	// EnvPrefix is the prefix for all environment variables used by superpi.
	// Environment variables provide an alternative to CLI flags for
	// configuration, following the 12-Factor App methodology.
	EnvPrefix = "SUPERPI_"
)

// Default configuration values. These can be overridden via command-line
// flags or environment variables.
const (
	// DefaultTimeout disables the deadline; π runs are open-ended by default
	// and are interrupted with Ctrl-C.
	DefaultTimeout time.Duration = 0
	// DefaultPort is the default server port.
	DefaultPort = "8080"
	// DefaultAlgo is the default algorithm selection.
	DefaultAlgo = "machin"
)

// AppConfig aggregates the application's configuration parameters, parsed
// from command-line flags and environment variables.
type AppConfig struct {
	// Digits is the number of fractional decimal digits of π to compute.
	Digits uint64
	// Algo selects the numerical method ("machin", "agm", or "all" to run
	// every registered kernel and cross-check their output).
	Algo string
	// Timeout sets the maximum duration for the computation. Zero means no
	// deadline.
	Timeout time.Duration
	// PrecisionMargin overrides the safety margin in mantissa bits added on
	// top of the bits needed for the requested digits. Zero keeps the default.
	PrecisionMargin uint
	// ExtraTerms overrides the number of series terms computed beyond the
	// digit request in the Machin kernel. Zero keeps the default.
	ExtraTerms uint64
	// Verbose, if true, prints the full digit string to the terminal.
	Verbose bool
	// JSONOutput, if true, outputs the result in JSON format.
	JSONOutput bool
	// ServerMode, if true, starts the application as an HTTP server.
	ServerMode bool
	// Port specifies the port to listen on in server mode.
	Port string
	// NoColor, if true, disables all color output in the CLI.
	// Also respects the NO_COLOR environment variable.
	NoColor bool
	// OutputFile is the path the digit file is written to. Empty selects the
	// default name pi_<digits>.txt; "-" disables the file entirely.
	OutputFile string
	// Quiet mode - minimal output for scripting purposes. Suppresses the
	// progress bar, banners, and informational messages.
	Quiet bool
}

// ToCalculationOptions converts the application configuration into
// pi.Options for use by the calculators.
func (c AppConfig) ToCalculationOptions() pi.Options {
	return pi.Options{
		PrecisionMargin: c.PrecisionMargin,
		ExtraTerms:      c.ExtraTerms,
	}
}

// ResolvedOutputFile returns the digit file path for this configuration, or
// "" when file output is disabled.
func (c AppConfig) ResolvedOutputFile() string {
	switch c.OutputFile {
	case "":
		return fmt.Sprintf("pi_%d.txt", c.Digits)
	case "-":
		return ""
	default:
		return c.OutputFile
	}
}

// Validate checks the semantic consistency of the configuration parameters.
//
// Parameters:
//   - availableAlgos: The valid algorithm names (e.g., ["agm", "machin"]).
//
// Returns:
//   - error: A ConfigError or InvalidDigitCountError if the configuration is
//     invalid, nil otherwise.
func (c AppConfig) Validate(availableAlgos []string) error {
	if err := pi.ValidateDigits(c.Digits); err != nil {
		return err
	}
	if c.Timeout < 0 {
		return apperrors.NewConfigError("timeout cannot be negative: %v", c.Timeout)
	}
	isAlgoAvailable := false
	for _, a := range availableAlgos {
		if a == c.Algo {
			isAlgoAvailable = true
			break
		}
	}
	if c.Algo != "all" && !isAlgoAvailable {
		return apperrors.NewConfigError("unrecognized algorithm: '%s'. Valid algorithms are: 'all' or [%s]", c.Algo, strings.Join(availableAlgos, ", "))
	}
	return nil
}

// ParseConfig parses the command-line arguments and populates an AppConfig.
// It defines all command-line flags, sets their defaults, applies environment
// variable overrides for flags not explicitly set, and validates the result.
//
// The function is designed to be testable by allowing the input arguments and
// output writer to be specified.
//
// Parameters:
//   - programName: The name of the program, used in the usage message.
//   - args: The command-line arguments (typically os.Args[1:]).
//   - errorWriter: Where parsing errors and usage information are printed.
//   - availableAlgos: The valid algorithm names for validation.
//
// Returns:
//   - AppConfig: The populated configuration struct.
//   - error: An error if flag parsing or validation fails.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	algoHelp := fmt.Sprintf("Algorithm to use: 'all' or one of [%s].", strings.Join(availableAlgos, ", "))

	config := AppConfig{}
	var margin, extraTerms uint64
	fs.Uint64Var(&config.Digits, "digits", pi.DefaultDigits, "Number of fractional decimal digits of pi to compute.")
	fs.Uint64Var(&config.Digits, "n", pi.DefaultDigits, "Number of digits (shorthand).")
	fs.StringVar(&config.Algo, "algo", DefaultAlgo, algoHelp)
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time for the computation (0 = no limit).")
	fs.Uint64Var(&margin, "margin", 0, "Extra mantissa bits of working precision (0 = default).")
	fs.Uint64Var(&extraTerms, "extra-terms", 0, "Extra series terms beyond the digit count in the Machin kernel (0 = default).")
	fs.BoolVar(&config.Verbose, "v", false, "Print the full digit string to the terminal (can be very long).")
	fs.BoolVar(&config.JSONOutput, "json", false, "Output results in JSON format.")
	fs.BoolVar(&config.ServerMode, "server", false, "Start in HTTP server mode.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.StringVar(&config.OutputFile, "output", "", "Digit file path (default pi_<digits>.txt; '-' disables the file).")
	fs.StringVar(&config.OutputFile, "o", "", "Digit file path (shorthand).")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - minimal output for scripts.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	config.PrecisionMargin = uint(margin)
	config.ExtraTerms = extraTerms

	// Apply environment variable overrides for flags not explicitly set.
	applyEnvOverrides(&config, fs)

	config.Algo = strings.ToLower(config.Algo)
	if err := config.Validate(availableAlgos); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, errors.New("invalid configuration")
	}
	return config, nil
}

// setCustomUsage installs a usage message that groups the flags by purpose.
func setCustomUsage(fs *flag.FlagSet) {
	out := fs.Output()
	fs.Usage = func() {
		fmt.Fprintf(out, "Usage: %s [options]\n\n", fs.Name())
		fmt.Fprintf(out, "Compute decimal digits of pi with arbitrary-precision arithmetic.\n\n")
		fmt.Fprintf(out, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(out, "\nEnvironment variables with the %s prefix override unset flags,\n", EnvPrefix)
		fmt.Fprintf(out, "e.g. %sDIGITS=100000 %sALGO=agm.\n", EnvPrefix, EnvPrefix)
	}
}
