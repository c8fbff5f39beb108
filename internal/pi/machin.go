// Package pi provides implementations for computing decimal digits of π.
// This file implements the linearly-convergent series kernel based on
// Machin's formula:
//
//	π = 4·(4·arctan(1/5) − arctan(1/239))
//
// with each arctangent evaluated by its Taylor expansion
// arctan(x) = Σ (−1)^i · x^(2i+1) / (2i+1).
package pi

import (
	"context"
	"math/big"
)

// Working value slots used by the Machin kernel.
const (
	machinSum = iota
	machinPow
	machinXSq
	machinTerm
	machinAtan5
	machinX
	machinSmall
	machinSlots
)

// MachinSeries computes π by summing a fixed number of terms of the two
// Machin arctangent series. The term count is decided up front from the digit
// request (digits + ExtraTerms per series, no adaptive early exit): series
// terms shrink monotonically and a fixed generous bound is cheap for bases
// this small, so the simplicity is worth the few wasted terms.
type MachinSeries struct{}

// Name returns the display name of the algorithm.
func (c *MachinSeries) Name() string {
	return "Machin series"
}

// CalculateCore runs the two arctangent expansions at the planned working
// precision and combines them into a high-precision approximation of π.
// Cancellation is honored at term boundaries; on any exit path the working
// set is released before returning.
func (c *MachinSeries) CalculateCore(ctx context.Context, reporter ProgressReporter, digits uint64, opts Options) (*big.Float, error) {
	opts = normalizeOptions(opts)
	prec := PlanPrecision(digits, opts.PrecisionMargin)
	terms := digits + opts.ExtraTerms

	st := acquireState(prec, machinSlots)
	defer st.release()

	tracker := NewMilestoneTracker(opts.Milestone)
	totalTerms := float64(2 * terms)
	lastReported := 0.0
	done := 0.0

	// tick is invoked once per summed term. The digit estimate is the crude
	// linear per-term proxy for the series being summed.
	tick := func(i uint64, digitsPerTerm float64) {
		done++
		tracker.Observe(uint64(float64(i) * digitsPerTerm))
		lastReported = reportThrottled(reporter, lastReported, done/totalTerms)
	}

	if err := c.arctanRecip(ctx, st, 5, terms, digitsPerTermAtan5, tick); err != nil {
		return nil, err
	}
	st.at(machinAtan5).Set(st.at(machinSum))

	if err := c.arctanRecip(ctx, st, 239, terms, digitsPerTermAtan239, tick); err != nil {
		return nil, err
	}

	// π = 16·arctan(1/5) − 4·arctan(1/239)
	small := st.at(machinSmall)
	result := st.newFloat()
	small.SetUint64(16)
	result.Mul(st.at(machinAtan5), small)
	small.SetUint64(4)
	st.at(machinTerm).Mul(st.at(machinSum), small)
	result.Sub(result, st.at(machinTerm))
	return result, nil
}

// arctanRecip accumulates arctan(1/m) into the sum slot over exactly `terms`
// terms, alternating sign by term parity and advancing the power accumulator
// by x² each step.
func (c *MachinSeries) arctanRecip(ctx context.Context, st *kernelState, m uint64, terms uint64, digitsPerTerm float64, tick func(i uint64, digitsPerTerm float64)) error {
	sum := st.at(machinSum)
	pow := st.at(machinPow)
	xsq := st.at(machinXSq)
	term := st.at(machinTerm)
	x := st.at(machinX)
	small := st.at(machinSmall)

	small.SetUint64(m)
	x.SetUint64(1)
	x.Quo(x, small)
	xsq.Mul(x, x)
	pow.Set(x)
	sum.SetInt64(0)

	for i := uint64(0); i < terms; i++ {
		if i%cancelCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}

		small.SetUint64(2*i + 1)
		term.Quo(pow, small)
		if i%2 == 0 {
			sum.Add(sum, term)
		} else {
			sum.Sub(sum, term)
		}
		pow.Mul(pow, xsq)

		tick(i, digitsPerTerm)
	}
	return nil
}
