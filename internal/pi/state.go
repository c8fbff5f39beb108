// Package pi provides implementations for computing decimal digits of π.
// This file manages the lifecycle of the high-precision working values owned
// by one computation call. Values are recycled through a pool between calls
// so repeated computations do not churn large mantissa allocations.
package pi

import (
	"math/big"
	"sync"
	"sync/atomic"
)

// MaxPooledPrecBits is the maximum precision (in bits) of a big.Float
// accepted back into the pool. Larger mantissas are left for GC collection.
const MaxPooledPrecBits = 4_000_000

var floatPool = sync.Pool{
	New: func() any { return new(big.Float) },
}

// Acquire/release accounting. Exposed to tests in this package so resource
// cleanup can be verified on every exit path (success, cancellation,
// extraction failure).
var (
	valuesAcquired atomic.Int64
	valuesReleased atomic.Int64
)

// kernelState is the private working set of one computation call. All
// high-precision values of a run are acquired through it at the start of the
// call and released exactly once at call exit, on every path.
type kernelState struct {
	prec     uint
	vals     []*big.Float
	released bool
}

// acquireState obtains n zeroed working values at the given precision.
func acquireState(prec uint, n int) *kernelState {
	st := &kernelState{prec: prec, vals: make([]*big.Float, n)}
	for i := range st.vals {
		f := floatPool.Get().(*big.Float)
		f.SetPrec(prec)
		f.SetInt64(0)
		st.vals[i] = f
	}
	valuesAcquired.Add(int64(n))
	return st
}

// at returns the i-th working value. Kernels may alias and swap these freely;
// release walks the slice, so every acquired value is returned regardless of
// which local name last pointed at it.
func (st *kernelState) at(i int) *big.Float {
	return st.vals[i]
}

// newFloat returns a fresh value at the state's precision that is NOT tracked
// by the state. Used for results that outlive the call.
func (st *kernelState) newFloat() *big.Float {
	return new(big.Float).SetPrec(st.prec)
}

// release returns all working values to the pool. Safe to call multiple
// times; only the first call has an effect, so deferred releases do not
// double-release after an explicit one.
func (st *kernelState) release() {
	if st == nil || st.released {
		return
	}
	st.released = true
	for i, f := range st.vals {
		if f == nil {
			continue
		}
		if st.prec <= MaxPooledPrecBits {
			f.SetInt64(0)
			floatPool.Put(f)
		}
		st.vals[i] = nil
	}
	valuesReleased.Add(int64(len(st.vals)))
}

// poolBalance returns acquired and released value counts since process start.
func poolBalance() (acquired, released int64) {
	return valuesAcquired.Load(), valuesReleased.Load()
}
