// Package pi provides implementations for computing decimal digits of π.
// It exposes a `Calculator` interface that abstracts the underlying numerical
// method, allowing the quadratically-convergent Gauss–Legendre iteration and
// the linearly-convergent Machin series to be used interchangeably. The
// package integrates precision planning, pooled high-precision working
// values, progress reporting, and digit extraction.
package pi

import (
	"context"
	"time"

	"math/big"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
)

var (
	computationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "superpi_computations_total",
			Help: "The total number of pi digit computations processed",
		},
		[]string{"algorithm", "status"},
	)
	computationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "superpi_computation_duration_seconds",
			Help: "The duration of pi digit computations in seconds",
		},
		[]string{"algorithm"},
	)
)

// Calculator defines the public interface for a π digit calculator.
// It is the primary abstraction used by the application's orchestration layer
// to interact with the different numerical methods.
type Calculator interface {
	// Calculate computes the first `digits` fractional decimal digits of π.
	// It is designed for safe concurrent execution and supports cancellation
	// through the provided context: a cancelled computation returns the
	// context error, never a digit string shorter than requested. Progress
	// updates are sent asynchronously to progressChan.
	//
	// Parameters:
	//   - ctx: The context for managing cancellation and deadlines.
	//   - progressChan: The channel for sending progress updates (may be nil).
	//   - calcIndex: A unique index for the calculator instance.
	//   - digits: The requested number of fractional digits (1..MaxDigits).
	//   - opts: Configuration options for the computation.
	//
	// Returns:
	//   - string: Exactly `digits` decimal digit characters (the fractional
	//     part of π; the leading "3" is never included).
	//   - error: An error if one occurred (validation, cancellation, extraction).
	Calculate(ctx context.Context, progressChan chan<- ProgressUpdate, calcIndex int, digits uint64, opts Options) (string, error)

	// Name returns the display name of the numerical method.
	Name() string
}

// coreCalculator defines the internal interface for a pure numerical kernel.
// A kernel produces the high-precision value of π; validation, extraction,
// and observability are layered on top by the decorator.
type coreCalculator interface {
	CalculateCore(ctx context.Context, reporter ProgressReporter, digits uint64, opts Options) (*big.Float, error)
	Name() string
}

// piCalculator is an implementation of the Calculator interface that uses the
// Decorator design pattern. It wraps a coreCalculator to add cross-cutting
// concerns: digit-count validation before any numeric work, digit extraction
// after the kernel finishes, and metrics/logging/tracing around the run.
type piCalculator struct {
	core coreCalculator
}

// NewCalculator constructs a Calculator around the given kernel.
// It panics if the core calculator is nil, ensuring system integrity.
func NewCalculator(core coreCalculator) Calculator {
	if core == nil {
		panic("pi: the `coreCalculator` implementation cannot be nil")
	}
	return &piCalculator{core: core}
}

// Name returns the name of the encapsulated kernel.
func (c *piCalculator) Name() string {
	return c.core.Name()
}

// Calculate adapts channel-based progress reporting onto the observer-based
// implementation and delegates to CalculateWithObservers.
func (c *piCalculator) Calculate(ctx context.Context, progressChan chan<- ProgressUpdate, calcIndex int, digits uint64, opts Options) (string, error) {
	subject := NewProgressSubject()
	if progressChan != nil {
		subject.Register(NewChannelObserver(progressChan))
	}
	return c.CalculateWithObservers(ctx, subject, calcIndex, digits, opts)
}

// CalculateWithObservers executes the computation with observer-based
// progress reporting, allowing multiple decoupled progress consumers
// (UI, logging, metrics) to be registered.
func (c *piCalculator) CalculateWithObservers(ctx context.Context, subject *ProgressSubject, calcIndex int, digits uint64, opts Options) (result string, err error) {
	tracer := otel.Tracer("pi")
	ctx, span := tracer.Start(ctx, "Compute")
	defer span.End()

	start := time.Now()
	defer func() {
		duration := time.Since(start).Seconds()
		status := "success"
		if err != nil {
			status = "error"
		}
		algoName := c.core.Name()
		computationsTotal.WithLabelValues(algoName, status).Inc()
		computationDuration.WithLabelValues(algoName).Observe(duration)

		log.Debug().
			Str("algo", algoName).
			Uint64("digits", digits).
			Float64("duration", duration).
			Str("status", status).
			Msg("computation completed")
	}()

	// Reject invalid requests before any numeric state exists.
	if err = ValidateDigits(digits); err != nil {
		return "", err
	}

	opts = normalizeOptions(opts)
	if opts.Milestone == nil {
		opts.Milestone = logMilestone
	}

	var reporter ProgressReporter
	if subject != nil {
		reporter = subject.AsProgressReporter(calcIndex)
	} else {
		reporter = func(float64) {}
	}

	value, err := c.core.CalculateCore(ctx, reporter, digits, opts)
	if err != nil {
		return "", err
	}

	// The kernel's working set is already released; only the result value
	// remains, and it is dropped whether or not extraction succeeds.
	result, err = ExtractDigits(value, digits)
	if err != nil {
		return "", err
	}
	reporter(1.0)
	return result, nil
}

// logMilestone is the default milestone sink: a low-frequency elapsed-time
// sample at each power-of-two estimated-digit milestone.
func logMilestone(estimatedDigits uint64, elapsed time.Duration) {
	log.Info().
		Uint64("estimated_digits", estimatedDigits).
		Dur("elapsed", elapsed).
		Msg("digit milestone")
}
