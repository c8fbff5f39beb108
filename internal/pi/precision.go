// Package pi provides implementations for computing decimal digits of π.
// This file implements the precision planner: the mapping from a requested
// decimal digit count to the working binary precision used for all
// intermediate high-precision values.
package pi

import (
	"math"

	apperrors "github.com/xmb505/SuperPi/internal/errors"
)

// ValidateDigits checks that a requested digit count is within the supported
// range. It is called before any numeric state is allocated, so an invalid
// request performs no numeric work at all.
//
// Parameters:
//   - digits: The requested number of fractional digits.
//
// Returns:
//   - error: An InvalidDigitCountError if digits is 0 or exceeds MaxDigits.
func ValidateDigits(digits uint64) error {
	if digits == 0 || digits > MaxDigits {
		return apperrors.NewInvalidDigitCountError(digits, MaxDigits)
	}
	return nil
}

// decimalBits returns the number of binary mantissa bits needed to represent
// the requested number of decimal digits: ceil(digits * log2(10)).
func decimalBits(digits uint64) uint {
	return uint(math.Ceil(float64(digits) * math.Log2(10)))
}

// PlanPrecision derives the working binary precision (in bits) for a request
// of the given decimal digit count. The result is monotonically non-decreasing
// in digits: bits = ceil(digits * log2(10)) + marginBits.
//
// The planner has no side effects; callers apply the returned precision to
// the values they create (big.Float precision is per value, so no process
// global configuration is ever mutated).
//
// Parameters:
//   - digits: The requested number of fractional digits.
//   - marginBits: The safety margin in bits. Zero selects DefaultPrecisionMargin.
//
// Returns:
//   - uint: The working precision in bits.
func PlanPrecision(digits uint64, marginBits uint) uint {
	if marginBits == 0 {
		marginBits = DefaultPrecisionMargin
	}
	return decimalBits(digits) + marginBits
}
