// Package service contains the transport-agnostic computation service used by
// the HTTP server.
package service

import (
	"context"
	"errors"

	"github.com/xmb505/SuperPi/internal/config"
	"github.com/xmb505/SuperPi/internal/pi"
)

var (
	// ErrMaxDigitsExceeded is returned when a digit request exceeds the
	// configured service limit.
	ErrMaxDigitsExceeded = errors.New("maximum digit count exceeded")
)

// Service defines the interface for π computation services. The abstraction
// enables dependency injection and easier testing/mocking.
type Service interface {
	// Calculate computes the requested fractional digits of π.
	//
	// Parameters:
	//   - ctx: The context for cancellation.
	//   - algoName: The name of the algorithm to use.
	//   - digits: The requested number of fractional digits.
	//
	// Returns:
	//   - string: The digit string.
	//   - error: An error if validation or computation fails.
	Calculate(ctx context.Context, algoName string, digits uint64) (string, error)
}

// CalculatorService handles the core logic for serving digit computations. It
// centralizes validation, algorithm retrieval, and execution options.
type CalculatorService struct {
	factory   pi.CalculatorFactory
	config    config.AppConfig
	maxDigits uint64
}

// Ensure CalculatorService implements Service interface.
var _ Service = (*CalculatorService)(nil)

// NewCalculatorService creates a new instance of CalculatorService.
//
// Parameters:
//   - factory: The factory to retrieve calculators from.
//   - cfg: The application configuration.
//   - maxDigits: The maximum allowed digit request (0 for the engine default).
func NewCalculatorService(factory pi.CalculatorFactory, cfg config.AppConfig, maxDigits uint64) *CalculatorService {
	return &CalculatorService{
		factory:   factory,
		config:    cfg,
		maxDigits: maxDigits,
	}
}

// Calculate retrieves the requested calculator and executes the computation
// with the configured options.
func (s *CalculatorService) Calculate(ctx context.Context, algoName string, digits uint64) (string, error) {
	if s.maxDigits > 0 && digits > s.maxDigits {
		return "", ErrMaxDigitsExceeded
	}

	calc, err := s.factory.Get(algoName)
	if err != nil {
		return "", err
	}

	// progressChan is nil: service usage is synchronous, progress is not
	// surfaced over HTTP.
	return calc.Calculate(ctx, nil, 0, digits, s.config.ToCalculationOptions())
}
