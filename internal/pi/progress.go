// Package pi provides implementations for computing decimal digits of π.
// This file contains progress reporting types and the milestone tracker used
// by the kernels for user feedback during long runs.
package pi

import "time"

// ProgressUpdate is a data transfer object that encapsulates the progress
// state of a computation. It is sent over a channel from the calculator to
// the user interface to provide asynchronous progress updates.
type ProgressUpdate struct {
	// CalculatorIndex is a unique identifier for the calculator instance,
	// allowing the UI to distinguish between multiple concurrent computations.
	CalculatorIndex int
	// Value represents the normalized progress of the computation, ranging
	// from 0.0 to 1.0.
	Value float64
}

// ProgressReporter defines the functional type for a progress reporting
// callback. Core kernels report through it without being coupled to the
// channel-based communication mechanism of the broader application.
//
// Parameters:
//   - progress: The normalized progress value (0.0 to 1.0).
type ProgressReporter func(progress float64)

// MilestoneFunc receives an elapsed-time sample when a computation crosses a
// power-of-two estimated-digit milestone (128, 256, 512, ...).
type MilestoneFunc func(estimatedDigits uint64, elapsed time.Duration)

// MilestoneTracker emits at most one elapsed-time sample per power-of-two
// estimated-digit milestone. The digit estimate is a crude iteration-based
// proxy, acceptable only as a UX heuristic; it is never used for correctness
// decisions.
type MilestoneTracker struct {
	start time.Time
	next  uint64
	emit  MilestoneFunc
}

// NewMilestoneTracker creates a tracker starting at FirstMilestone.
// A nil emit function disables emission entirely.
func NewMilestoneTracker(emit MilestoneFunc) *MilestoneTracker {
	return &MilestoneTracker{
		start: time.Now(),
		next:  FirstMilestone,
		emit:  emit,
	}
}

// Observe records the current estimated digit count. If one or more pending
// milestones have been crossed, a single sample is emitted for each, and the
// tracker advances so no milestone is ever reported twice.
func (t *MilestoneTracker) Observe(estimatedDigits uint64) {
	if t == nil || t.emit == nil {
		return
	}
	for estimatedDigits >= t.next {
		t.emit(t.next, time.Since(t.start))
		if t.next > MaxDigits {
			return
		}
		t.next *= 2
	}
}

// reportThrottled forwards progress through reporter only when it advanced by
// at least ProgressReportThreshold since the last report, or reached 1.0.
// Returns the new last-reported value.
func reportThrottled(reporter ProgressReporter, lastReported, progress float64) float64 {
	if reporter == nil {
		return lastReported
	}
	if progress > 1.0 {
		progress = 1.0
	}
	if progress-lastReported >= ProgressReportThreshold || progress >= 1.0 {
		reporter(progress)
		return progress
	}
	return lastReported
}
