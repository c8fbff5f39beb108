package server

import (
	"log"
	"time"

	"github.com/xmb505/SuperPi/internal/logging"
	"github.com/xmb505/SuperPi/internal/service"
)

// DefaultMaxRequestDigits caps the digit count accepted over HTTP. Whole-run
// CLI limits do not apply here: an HTTP request holds a connection open, so
// the ceiling is far lower than the engine maximum.
const DefaultMaxRequestDigits uint64 = 100_000

// Option defines a functional option for configuring a Server.
type Option func(*Server)

// WithLogger sets a custom logger for the server using the unified logging
// interface. Useful for testing or integrating with existing logging
// infrastructure.
func WithLogger(logger logging.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStdLogger sets a standard library log.Logger for the server, for
// backward compatibility with code using log.Logger.
func WithStdLogger(logger *log.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logging.NewStdLoggerAdapter(logger)
		}
	}
}

// WithService sets a custom service for the server. This enables dependency
// injection for testing with mock services.
func WithService(svc service.Service) Option {
	return func(s *Server) {
		if svc != nil {
			s.service = svc
		}
	}
}

// WithTimeouts sets custom timeout configuration for the server.
func WithTimeouts(timeouts Timeouts) Option {
	return func(s *Server) {
		s.timeouts = timeouts
	}
}

// WithMaxRequestDigits sets the per-request digit cap (0 disables the cap).
func WithMaxRequestDigits(max uint64) Option {
	return func(s *Server) {
		s.maxDigits = max
	}
}

// Timeouts holds timeout configuration for the HTTP server.
type Timeouts struct {
	// RequestTimeout is the maximum duration for a single computation request.
	RequestTimeout time.Duration
	// ShutdownTimeout is the maximum duration allowed for graceful shutdown.
	ShutdownTimeout time.Duration
	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeout time.Duration
	// WriteTimeout is the maximum duration before timing out response writes.
	WriteTimeout time.Duration
	// IdleTimeout is the keep-alive idle limit.
	IdleTimeout time.Duration
}

// DefaultServerTimeouts returns the standard timeout configuration.
func DefaultServerTimeouts() Timeouts {
	return Timeouts{
		RequestTimeout:  5 * time.Minute,
		ShutdownTimeout: 30 * time.Second,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    10 * time.Minute,
		IdleTimeout:     2 * time.Minute,
	}
}
