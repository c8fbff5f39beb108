// Package pi provides implementations for computing decimal digits of π.
// This file implements the digit extractor: the post-processing step that
// turns the internal high-precision value into an exact decimal digit string
// of the requested length.
package pi

import (
	"fmt"
	"math/big"
	"strings"

	apperrors "github.com/xmb505/SuperPi/internal/errors"
)

// renderFraction materializes exactly fracDigits truncated fractional digits
// of v. It scales the fractional part by 10^fracDigits and takes the integer
// part, which truncates toward zero. A decimal string renderer must not be
// used here: string formatting rounds at the last rendered digit, and when the
// value has a run of 9s just past the cut (π's Feynman point, fractional
// positions 762-767) the carry propagates back into the digits being returned.
//
// It is a package variable so tests can simulate an output-buffer failure at
// the extraction step.
var renderFraction = func(v *big.Float, fracDigits uint64) (string, error) {
	prec := v.Prec()

	frac := new(big.Float).SetPrec(prec).Set(v)
	intPart, _ := frac.Int(nil)
	frac.Sub(frac, new(big.Float).SetPrec(prec).SetInt(intPart))

	scale := new(big.Int).Exp(big.NewInt(10), new(big.Int).SetUint64(fracDigits), nil)
	frac.Mul(frac, new(big.Float).SetPrec(prec).SetInt(scale))

	scaled, _ := frac.Int(nil)
	s := scaled.Text(10)
	if uint64(len(s)) < fracDigits {
		s = strings.Repeat("0", int(fracDigits)-len(s)) + s
	}
	return s, nil
}

// ExtractDigits returns the first `digits` fractional decimal digits of value,
// discarding the integer part (the leading "3" of π).
//
// Truncation, not rounding, is deliberate: the precision margin planned for
// the computation exists precisely so that truncation error at the last digit
// cannot corrupt earlier digits. The operation is deterministic; extracting
// twice from the same value yields identical strings.
//
// Parameters:
//   - value: The high-precision approximation of π (≈ 3.14159...).
//   - digits: The number of fractional digits to return.
//
// Returns:
//   - string: Exactly `digits` ASCII decimal digit characters.
//   - error: InvalidDigitCountError for an out-of-range request, or
//     ExtractionError if the digit string cannot be materialized.
func ExtractDigits(value *big.Float, digits uint64) (string, error) {
	if err := ValidateDigits(digits); err != nil {
		return "", err
	}
	if value == nil {
		return "", apperrors.NewExtractionError(fmt.Errorf("nil value"))
	}

	s, err := renderFraction(value, digits)
	if err != nil {
		return "", apperrors.NewExtractionError(err)
	}
	if uint64(len(s)) != digits {
		return "", apperrors.NewExtractionError(fmt.Errorf("rendered %d fractional digits, need %d", len(s), digits))
	}
	return s, nil
}
