// Package pi provides implementations for computing decimal digits of π.
// This file contains the Observer pattern implementation for progress
// reporting, with concrete observers for channels, logging, and metrics.
package pi

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// ProgressObserver defines the interface for observing progress events.
// Implementations receive notifications when computation progress changes,
// enabling decoupled handling of progress updates for UI, logging, metrics.
type ProgressObserver interface {
	// Update is called when progress changes.
	//
	// Parameters:
	//   - calcIndex: The calculator instance identifier.
	//   - progress: The normalized progress value (0.0 to 1.0).
	Update(calcIndex int, progress float64)
}

// ProgressSubject manages observer registration and notification for
// progress events. It is safe for concurrent use.
type ProgressSubject struct {
	observers []ProgressObserver
	mu        sync.RWMutex
}

// NewProgressSubject creates a new subject for managing progress observers.
func NewProgressSubject() *ProgressSubject {
	return &ProgressSubject{observers: make([]ProgressObserver, 0)}
}

// Register adds an observer to receive progress updates.
// Observers are notified in the order they are registered.
func (s *ProgressSubject) Register(observer ProgressObserver) {
	if observer == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, observer)
}

// Unregister removes an observer from receiving updates.
func (s *ProgressSubject) Unregister(observer ProgressObserver) {
	if observer == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, o := range s.observers {
		if o == observer {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

// Notify sends a progress update to all registered observers, synchronously
// in registration order.
func (s *ProgressSubject) Notify(calcIndex int, progress float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, observer := range s.observers {
		observer.Update(calcIndex, progress)
	}
}

// ObserverCount returns the number of registered observers.
func (s *ProgressSubject) ObserverCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.observers)
}

// AsProgressReporter returns a ProgressReporter function that notifies all
// observers, for use by the core kernels.
func (s *ProgressSubject) AsProgressReporter(calcIndex int) ProgressReporter {
	return func(progress float64) {
		s.Notify(calcIndex, progress)
	}
}

// ChannelObserver adapts the Observer pattern to channel-based communication
// with the UI layer.
type ChannelObserver struct {
	channel chan<- ProgressUpdate
}

// NewChannelObserver creates an observer that sends updates to a channel.
// The channel should have sufficient buffer capacity to avoid blocking.
// If ch is nil, updates are discarded.
func NewChannelObserver(ch chan<- ProgressUpdate) *ChannelObserver {
	return &ChannelObserver{channel: ch}
}

// Update implements ProgressObserver by sending to the channel.
// Uses a non-blocking send; if the channel is full, the update is dropped
// and the UI catches up on the next one.
func (o *ChannelObserver) Update(calcIndex int, progress float64) {
	if o.channel == nil {
		return
	}

	if progress > 1.0 {
		progress = 1.0
	}

	update := ProgressUpdate{CalculatorIndex: calcIndex, Value: progress}

	select {
	case o.channel <- update:
	default:
	}
}

// LoggingObserver logs progress updates using zerolog, throttled by a
// minimum progress delta to avoid log spam.
type LoggingObserver struct {
	logger    zerolog.Logger
	threshold float64
	lastLog   map[int]float64
	mu        sync.Mutex
}

// NewLoggingObserver creates an observer that logs progress whenever it
// changes by at least threshold (e.g., 0.1 for 10%).
func NewLoggingObserver(logger zerolog.Logger, threshold float64) *LoggingObserver {
	if threshold <= 0 {
		threshold = 0.1
	}
	return &LoggingObserver{
		logger:    logger,
		threshold: threshold,
		lastLog:   make(map[int]float64),
	}
}

// Update implements ProgressObserver by logging significant progress changes.
func (o *LoggingObserver) Update(calcIndex int, progress float64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	lastProgress := o.lastLog[calcIndex]

	shouldLog := progress >= 1.0 ||
		lastProgress == 0 && progress > 0 ||
		progress-lastProgress >= o.threshold

	if shouldLog {
		o.logger.Debug().
			Int("calculator", calcIndex).
			Float64("progress", progress).
			Str("percent", fmt.Sprintf("%.1f%%", progress*100)).
			Msg("computation progress")
		o.lastLog[calcIndex] = progress
	}
}

var (
	// progressGauge is registered once globally to avoid duplicate
	// registration errors.
	progressGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "superpi_computation_progress",
			Help: "Current progress of pi digit computations (0.0 to 1.0)",
		},
		[]string{"calculator_index"},
	)
)

// MetricsObserver exports progress to Prometheus via a gauge metric.
type MetricsObserver struct {
	gauge *prometheus.GaugeVec
}

// NewMetricsObserver creates an observer that updates Prometheus metrics.
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{gauge: progressGauge}
}

// Update implements ProgressObserver by updating the Prometheus gauge.
func (o *MetricsObserver) Update(calcIndex int, progress float64) {
	o.gauge.WithLabelValues(fmt.Sprintf("%d", calcIndex)).Set(progress)
}

// ResetMetrics resets the progress metrics for all calculators.
// This should be called at the start of a new computation batch.
func (o *MetricsObserver) ResetMetrics() {
	o.gauge.Reset()
}

// NoOpObserver is a null object that discards all progress updates.
// Useful for testing or when progress tracking is not needed.
type NoOpObserver struct{}

// NewNoOpObserver creates a no-op observer that discards updates.
func NewNoOpObserver() *NoOpObserver {
	return &NoOpObserver{}
}

// Update implements ProgressObserver by doing nothing.
func (o *NoOpObserver) Update(calcIndex int, progress float64) {
	// Intentionally empty - Null Object pattern
}
