// Package pi provides implementations for computing decimal digits of π.
// This file contains configuration options for the computation kernels.
package pi

// Options configures one π digit computation.
type Options struct {
	// PrecisionMargin is the safety margin in mantissa bits added on top of
	// the bits needed to represent the requested digits. If 0, the default
	// (DefaultPrecisionMargin) is used.
	PrecisionMargin uint
	// ExtraTerms is the number of series terms computed beyond the requested
	// digit count in the Machin kernel. The term count is fixed up front from
	// the digit request; there is no adaptive early exit. If 0, the default
	// (DefaultExtraTerms) is used.
	ExtraTerms uint64
	// ConvergenceGuardBits widens the AGM stopping threshold beyond the bits
	// strictly required for the requested digits, so convergence is decided
	// relative to the requested precision rather than a hardcoded constant.
	// If 0, the default (DefaultConvergenceGuardBits) is used.
	ConvergenceGuardBits uint
	// Milestone receives elapsed-time samples at power-of-two estimated-digit
	// milestones. If nil, milestones are logged through the default logger.
	Milestone MilestoneFunc
}

// normalizeOptions returns a copy of opts with default values filled in for
// zero values. This ensures consistent policy handling across both kernels.
func normalizeOptions(opts Options) Options {
	normalized := opts
	if normalized.PrecisionMargin == 0 {
		normalized.PrecisionMargin = DefaultPrecisionMargin
	}
	if normalized.ExtraTerms == 0 {
		normalized.ExtraTerms = DefaultExtraTerms
	}
	if normalized.ConvergenceGuardBits == 0 {
		normalized.ConvergenceGuardBits = DefaultConvergenceGuardBits
	}
	return normalized
}
