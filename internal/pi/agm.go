// Package pi provides implementations for computing decimal digits of π.
// This file implements the quadratically-convergent iterative kernel based on
// the Gauss–Legendre arithmetic–geometric mean iteration.
package pi

import (
	"context"
	"fmt"
	"math/big"
	"math/bits"

	apperrors "github.com/xmb505/SuperPi/internal/errors"
)

// Working value slots used by the AGM kernel.
const (
	agmA = iota
	agmB
	agmT
	agmP
	agmANext
	agmDiff
	agmTmp
	agmEps
	agmHalf
	agmSlots
)

// GaussLegendre computes π by the Gauss–Legendre iteration. Starting from
// a₀ = 1, b₀ = 1/√2, t₀ = 1/4, p₀ = 1, each round refines
//
//	a' = (a + b) / 2
//	b' = √(a·b)
//	t' = t − p·(a' − a)²
//	p' = 2·p
//
// and the final value is π ≈ (a + b)² / (4·t). Each round roughly doubles the
// number of correct digits.
//
// The stopping test compares |a − b| against a threshold derived from the
// requested precision (2^−(decimalBits(digits)+guard)) rather than a fixed
// constant, so convergence always covers the requested digit count whatever
// the working precision.
type GaussLegendre struct{}

// Name returns the display name of the algorithm.
func (c *GaussLegendre) Name() string {
	return "Gauss-Legendre"
}

// CalculateCore iterates until |a − b| drops below the precision-derived
// threshold. Cancellation is checked at the end of each round, after the
// state has been consistently updated. A round cap derived from the working
// precision (quadratic convergence needs about log2(workingBits) rounds)
// guards against a miscalibrated threshold looping forever; hitting it is
// reported as a calculation error, never as a wrong digit string.
func (c *GaussLegendre) CalculateCore(ctx context.Context, reporter ProgressReporter, digits uint64, opts Options) (*big.Float, error) {
	opts = normalizeOptions(opts)
	prec := PlanPrecision(digits, opts.PrecisionMargin)

	st := acquireState(prec, agmSlots)
	defer st.release()

	a, b := st.at(agmA), st.at(agmB)
	t, p := st.at(agmT), st.at(agmP)
	aNext := st.at(agmANext)
	diff, tmp := st.at(agmDiff), st.at(agmTmp)
	eps, half := st.at(agmEps), st.at(agmHalf)

	a.SetInt64(1)
	tmp.SetFloat64(0.5)
	b.Sqrt(tmp)
	t.SetFloat64(0.25)
	p.SetInt64(1)
	half.SetFloat64(0.5)

	targetBits := decimalBits(digits) + opts.ConvergenceGuardBits
	eps.SetInt64(1)
	eps.SetMantExp(eps, -int(targetBits))

	maxRounds := bits.Len(uint(prec)) + 8
	tracker := NewMilestoneTracker(opts.Milestone)
	lastReported := 0.0

	for round := 0; ; round++ {
		aNext.Add(a, b)
		aNext.Mul(aNext, half)

		tmp.Mul(a, b)
		b.Sqrt(tmp)

		diff.Sub(aNext, a)
		diff.Mul(diff, diff)
		diff.Mul(diff, p)
		t.Sub(t, diff)

		p.Add(p, p)
		a, aNext = aNext, a

		// Correct digits roughly double each round; this estimate drives
		// milestones and progress only, never the stopping decision.
		estDigits := estimatedAGMDigits(round)
		tracker.Observe(estDigits)
		if estDigits > digits {
			estDigits = digits
		}
		lastReported = reportThrottled(reporter, lastReported, float64(estDigits)/float64(digits))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		diff.Sub(a, b)
		diff.Abs(diff)
		if diff.Cmp(eps) < 0 {
			break
		}
		if round+1 >= maxRounds {
			return nil, apperrors.CalculationError{
				Cause: fmt.Errorf("gauss-legendre did not converge within %d rounds at %d bits", maxRounds, prec),
			}
		}
	}

	// π ≈ (a + b)² / (4·t)
	aNext.Add(a, b)
	aNext.Mul(aNext, aNext)
	tmp.Add(t, t)
	tmp.Add(tmp, tmp)
	result := st.newFloat()
	result.Quo(aNext, tmp)
	return result, nil
}

// estimatedAGMDigits returns the crude 2^(round+1) digit estimate for the
// quadratic iteration, saturating well below overflow.
func estimatedAGMDigits(round int) uint64 {
	if round >= 62 {
		return 1 << 62
	}
	return uint64(1) << uint(round+1)
}
