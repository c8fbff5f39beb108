// Package apperrors defines structured application error types,
// allowing for a clear distinction between error classes (configuration,
// digit-count validation, extraction, etc.) and for carrying the underlying cause.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// All composite error types implement the Unwrap() method to support errors.Is()
// and errors.As().
package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the operation timed out.
	ExitErrorMismatch = 3   // Indicates a digit mismatch between algorithms.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect
// user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// InvalidDigitCountError is returned when a requested digit count is zero or
// exceeds the configured maximum. It is always raised before any numeric work
// begins.
type InvalidDigitCountError struct {
	// Digits is the rejected digit count.
	Digits uint64
	// Max is the configured upper bound.
	Max uint64
}

// Error returns the error message for an InvalidDigitCountError.
func (e InvalidDigitCountError) Error() string {
	return fmt.Sprintf("invalid digit count %d: must be between 1 and %d", e.Digits, e.Max)
}

// NewInvalidDigitCountError creates a new InvalidDigitCountError.
func NewInvalidDigitCountError(digits, max uint64) error {
	return InvalidDigitCountError{Digits: digits, Max: max}
}

// IsInvalidDigitCount reports whether err is (or wraps) an InvalidDigitCountError.
func IsInvalidDigitCount(err error) bool {
	var e InvalidDigitCountError
	return errors.As(err, &e)
}

// ExtractionError represents a failure to materialize the final digit string
// from the high-precision value (the allocation-failure class of behavior).
// All working numeric state has been released by the time this error is
// returned to the caller.
type ExtractionError struct {
	// Cause is the underlying error that prevented extraction.
	Cause error
}

// Error returns the error message for an ExtractionError.
func (e ExtractionError) Error() string {
	return fmt.Sprintf("digit extraction failed: %v", e.Cause)
}

// Unwrap returns the original wrapped error.
func (e ExtractionError) Unwrap() error { return e.Cause }

// NewExtractionError creates a new ExtractionError wrapping cause.
func NewExtractionError(cause error) error {
	return ExtractionError{Cause: cause}
}

// CalculationError encapsulates a calculation error while preserving the
// original cause. This allows for structured error handling and inspection
// of what went wrong during the computation.
type CalculationError struct {
	// Cause is the underlying error that triggered this calculation error.
	Cause error
}

// Error returns the error message from the underlying cause.
func (e CalculationError) Error() string { return e.Cause.Error() }

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
func (e CalculationError) Unwrap() error { return e.Cause }

// ServerError represents errors that occur in the HTTP server component.
// It wraps an underlying error with additional context specific to the server
// operation.
type ServerError struct {
	// Message is a descriptive message about the server error.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

// Error returns the error message for a ServerError.
func (e ServerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e ServerError) Unwrap() error { return e.Cause }

// NewServerError creates a new ServerError with a message and optional cause.
func NewServerError(message string, cause error) error {
	return ServerError{Message: message, Cause: cause}
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline
// exceeded error. Cancellation is a distinguished outcome, not a failure: the
// caller reports interruption rather than error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
