package pi

// Digit request bounds. MaxDigits matches the documented capability of the
// tool; larger requests are rejected before any numeric work begins.
const (
	// DefaultDigits is the default number of fractional digits to compute.
	DefaultDigits uint64 = 1_000_000
	// MaxDigits is the maximum supported number of fractional digits.
	MaxDigits uint64 = 10_000_000
)

// Precision policy defaults. The working binary precision for a request of D
// decimal digits is ceil(D * log2(10)) + margin; the margin absorbs rounding
// error accumulated over the many elementary operations of a run so that the
// final truncation at digit D is exact.
const (
	// DefaultPrecisionMargin is the default safety margin in mantissa bits.
	DefaultPrecisionMargin uint = 10_000
	// DefaultExtraTerms is the default number of series terms computed beyond
	// the requested digit count in the Machin kernel.
	DefaultExtraTerms uint64 = 1_000
	// DefaultConvergenceGuardBits widens the AGM stopping threshold beyond the
	// bits strictly needed for the requested digits.
	DefaultConvergenceGuardBits uint = 64
)

// Progress reporting tuning.
const (
	// ProgressReportThreshold is the minimum progress delta between two
	// reported updates, to avoid flooding the UI channel.
	ProgressReportThreshold = 0.01
	// FirstMilestone is the first power-of-two estimated-digit milestone at
	// which an elapsed-time sample is emitted.
	FirstMilestone uint64 = 128
	// cancelCheckInterval is the number of series terms between context
	// checks in the Machin kernel. Round boundaries are the safe points for
	// cooperative cancellation; checking every term would be wasted work for
	// tiny operands.
	cancelCheckInterval = 64
)

// Digits-per-term constants for the two Machin arctangent series. Each term of
// arctan(1/x) gains log10(x^2) decimal digits, so these drive the estimated
// digit count used for progress milestones. UX heuristics only, never used
// for correctness decisions.
const (
	digitsPerTermAtan5   = 1.39794 // log10(25)
	digitsPerTermAtan239 = 4.75664 // log10(239^2)
)
