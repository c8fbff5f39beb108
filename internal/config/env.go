// Package config provides the configuration management for the superpi
// application. This file contains the environment variable override layer.
package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// getEnvString returns the value of the environment variable with the given
// key (prefixed with EnvPrefix), or the default value if not set.
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvUint64 returns the value of the environment variable with the given
// key parsed as uint64, or the default value if not set or invalid.
func getEnvUint64(key string, defaultVal uint64) uint64 {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.ParseUint(val, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvBool returns the value of the environment variable with the given key
// parsed as bool, or the default value if not set. Accepts "true", "1", "yes"
// as true and "false", "0", "no" as false (case-insensitive).
func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		switch strings.ToLower(val) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return defaultVal
}

// getEnvDuration returns the value of the environment variable with the given
// key parsed as time.Duration ("5m", "30s", "1h30m"), or the default value if
// not set or invalid.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// isFlagSet checks if a flag was explicitly set on the command line, which
// determines whether an environment variable override applies.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line, giving the
// priority: CLI flags > environment variables > defaults.
//
// Supported environment variables:
//   - SUPERPI_DIGITS: Number of fractional digits to compute (uint64)
//   - SUPERPI_ALGO: Algorithm to use (string: machin, agm, all)
//   - SUPERPI_TIMEOUT: Computation timeout (duration: "5m", "30s")
//   - SUPERPI_MARGIN: Extra mantissa bits of working precision (uint64)
//   - SUPERPI_EXTRA_TERMS: Extra Machin series terms (uint64)
//   - SUPERPI_PORT: Port for server mode (string)
//   - SUPERPI_OUTPUT: Digit file path (string)
//   - SUPERPI_SERVER: Enable server mode (bool)
//   - SUPERPI_JSON: Enable JSON output (bool)
//   - SUPERPI_VERBOSE: Print the full digit string (bool)
//   - SUPERPI_QUIET: Enable quiet mode (bool)
//   - SUPERPI_NO_COLOR: Disable colored output (bool)
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "digits") && !isFlagSet(fs, "n") {
		config.Digits = getEnvUint64("DIGITS", config.Digits)
	}
	if !isFlagSet(fs, "margin") {
		config.PrecisionMargin = uint(getEnvUint64("MARGIN", uint64(config.PrecisionMargin)))
	}
	if !isFlagSet(fs, "extra-terms") {
		config.ExtraTerms = getEnvUint64("EXTRA_TERMS", config.ExtraTerms)
	}
	if !isFlagSet(fs, "timeout") {
		config.Timeout = getEnvDuration("TIMEOUT", config.Timeout)
	}
	if !isFlagSet(fs, "algo") {
		config.Algo = getEnvString("ALGO", config.Algo)
	}
	if !isFlagSet(fs, "port") {
		config.Port = getEnvString("PORT", config.Port)
	}
	if !isFlagSet(fs, "output") && !isFlagSet(fs, "o") {
		config.OutputFile = getEnvString("OUTPUT", config.OutputFile)
	}
	if !isFlagSet(fs, "server") {
		config.ServerMode = getEnvBool("SERVER", config.ServerMode)
	}
	if !isFlagSet(fs, "json") {
		config.JSONOutput = getEnvBool("JSON", config.JSONOutput)
	}
	if !isFlagSet(fs, "v") {
		config.Verbose = getEnvBool("VERBOSE", config.Verbose)
	}
	if !isFlagSet(fs, "quiet") && !isFlagSet(fs, "q") {
		config.Quiet = getEnvBool("QUIET", config.Quiet)
	}
	if !isFlagSet(fs, "no-color") {
		config.NoColor = getEnvBool("NO_COLOR", config.NoColor)
	}
}
