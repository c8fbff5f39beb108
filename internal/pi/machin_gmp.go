//go:build gmp

// This file provides a GMP-backed Machin series kernel, conditionally
// compiled with the "gmp" build tag. The build tag architecture ensures that:
//   - Projects can build without GMP (the default, using math/big)
//   - GMP support is opt-in, requiring: go build -tags=gmp
//   - The codebase remains portable across systems without libgmp installed
//
// System Requirements for GMP:
//   - Linux: sudo apt-get install libgmp-dev (Debian/Ubuntu)
//   - macOS: brew install gmp
//
// Architectural Decision:
// github.com/ncw/gmp binds GMP's integer type only, so this kernel evaluates
// the Machin arctangent series in fixed-point: every quantity is an integer
// scaled by 10^(digits+guard). The direct use of gmp.Int here is intentional;
// an abstract integer interface would add indirection cost on every term for
// no portability benefit, since the build tag already provides the seam.

package pi

import (
	"context"
	"math/big"

	"github.com/ncw/gmp"
)

func init() {
	RegisterCalculator("machin-gmp", func() coreCalculator { return &GMPMachin{} })
}

// gmpGuardDigits is the number of extra scaled decimal digits carried so the
// final truncation at the requested digit is unaffected by the series tail.
const gmpGuardDigits = 10

// GMPMachin evaluates π = 16·arctan(1/5) − 4·arctan(1/239) in fixed-point
// decimal arithmetic on GMP integers. Unlike the floating Machin kernel, the
// integer series terminates naturally when a term underflows the scale to
// zero, so no fixed term count is needed.
type GMPMachin struct{}

// Name returns the name of the algorithm.
func (c *GMPMachin) Name() string {
	return "Machin series (GMP)"
}

// CalculateCore computes the scaled integer value of π and converts it to a
// high-precision float at the planned working precision, so extraction is
// shared with the other kernels.
func (c *GMPMachin) CalculateCore(ctx context.Context, reporter ProgressReporter, digits uint64, opts Options) (*big.Float, error) {
	opts = normalizeOptions(opts)

	scale := digits + gmpGuardDigits
	one := gmpPow10(scale)

	// The two series jointly need about scale/log10(25) + scale/log10(239²)
	// terms; used for progress estimation only.
	estTerms := float64(scale)/digitsPerTermAtan5 + float64(scale)/digitsPerTermAtan239
	done := 0.0
	lastReported := 0.0
	tracker := NewMilestoneTracker(opts.Milestone)
	tick := func(estDigits uint64) {
		done++
		tracker.Observe(estDigits)
		lastReported = reportThrottled(reporter, lastReported, done/estTerms)
	}

	atan5, err := gmpArctanRecip(ctx, one, 5, digitsPerTermAtan5, tick)
	if err != nil {
		return nil, err
	}
	atan239, err := gmpArctanRecip(ctx, one, 239, digitsPerTermAtan239, tick)
	if err != nil {
		return nil, err
	}

	pi := new(gmp.Int).MulUint32(atan5, 16)
	atan239.MulUint32(atan239, 4)
	pi.Sub(pi, atan239)

	// Convert the scaled integer to a float: π = pi / 10^scale.
	prec := PlanPrecision(digits, opts.PrecisionMargin)
	num := new(big.Float).SetPrec(prec).SetInt(new(big.Int).SetBytes(pi.Bytes()))
	den := new(big.Float).SetPrec(prec).SetInt(new(big.Int).SetBytes(one.Bytes()))
	return num.Quo(num, den), nil
}

// gmpArctanRecip computes one · arctan(1/m) by the alternating Taylor
// series, stopping when the scaled term reaches zero.
func gmpArctanRecip(ctx context.Context, one *gmp.Int, m int64, digitsPerTerm float64, tick func(estDigits uint64)) (*gmp.Int, error) {
	term := new(gmp.Int).Div(one, gmp.NewInt(m))
	msq := gmp.NewInt(m * m)
	sum := new(gmp.Int).Set(term)
	tmp := new(gmp.Int)
	small := new(gmp.Int)

	for i := uint64(1); ; i++ {
		if i%cancelCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}

		term.Div(term, msq)
		if term.Sign() == 0 {
			break
		}
		small.SetInt64(int64(2*i + 1))
		tmp.Div(term, small)
		if i%2 == 1 {
			sum.Sub(sum, tmp)
		} else {
			sum.Add(sum, tmp)
		}

		tick(uint64(float64(i) * digitsPerTerm))
	}
	return sum, nil
}

// gmpPow10 returns 10^n by binary exponentiation.
func gmpPow10(n uint64) *gmp.Int {
	result := gmp.NewInt(1)
	base := gmp.NewInt(10)
	for n > 0 {
		if n&1 == 1 {
			result.Mul(result, base)
		}
		base.Mul(base, base)
		n >>= 1
	}
	return result
}
