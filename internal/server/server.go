package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/xmb505/SuperPi/internal/config"
	apperrors "github.com/xmb505/SuperPi/internal/errors"
	"github.com/xmb505/SuperPi/internal/logging"
	"github.com/xmb505/SuperPi/internal/pi"
	"github.com/xmb505/SuperPi/internal/service"
)

// Server represents the HTTP server for the π digit API. It wraps the
// standard http.Server and adds application-specific configuration and
// graceful shutdown capabilities.
type Server struct {
	factory        pi.CalculatorFactory
	service        service.Service
	cfg            config.AppConfig
	httpServer     *http.Server
	logger         logging.Logger
	shutdownSignal chan os.Signal
	metrics        *Metrics
	timeouts       Timeouts
	maxDigits      uint64
}

// NewServer creates a new Server instance with the given calculator factory
// and configuration. It initializes the HTTP server with timeouts and a
// request multiplexer.
//
// Parameters:
//   - factory: The calculator factory to retrieve implementations from.
//   - cfg: The application configuration (port, precision options).
//   - opts: Optional functional options for customizing the server.
//
// Returns:
//   - *Server: A pointer to the initialized Server.
func NewServer(factory pi.CalculatorFactory, cfg config.AppConfig, opts ...Option) *Server {
	s := &Server{
		factory:        factory,
		cfg:            cfg,
		logger:         logging.NewLogger(os.Stdout, "server"),
		shutdownSignal: make(chan os.Signal, 1),
		metrics:        NewMetrics(),
		timeouts:       DefaultServerTimeouts(),
		maxDigits:      DefaultMaxRequestDigits,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.service == nil {
		s.service = service.NewCalculatorService(s.factory, s.cfg, s.maxDigits)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/calculate", s.wrapWithMiddleware(s.handleCalculate))
	mux.HandleFunc("/health", s.wrapWithMiddleware(s.handleHealth))
	mux.HandleFunc("/algorithms", s.wrapWithMiddleware(s.handleAlgorithms))
	mux.HandleFunc("/metrics", s.wrapWithMiddleware(s.handleMetrics))

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  s.timeouts.ReadTimeout,
		WriteTimeout: s.timeouts.WriteTimeout,
		IdleTimeout:  s.timeouts.IdleTimeout,
	}

	return s
}

// wrapWithMiddleware applies the middleware chain to a handler:
// Logging -> Metrics -> Handler.
func (s *Server) wrapWithMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	wrapped := s.metricsMiddleware(handler)
	wrapped = s.loggingMiddleware(wrapped)
	return wrapped
}

// loggingMiddleware logs each request with its method and path.
func (s *Server) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("request received",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path))
		next(w, r)
	}
}

// Handler returns the server's root HTTP handler, for use in tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start initializes and starts the HTTP server. It listens for incoming
// requests on the configured port and handles SIGINT/SIGTERM to ensure a
// graceful shutdown.
//
// Returns:
//   - error: An error if the server fails to start or shuts down unexpectedly.
func (s *Server) Start() error {
	signal.Notify(s.shutdownSignal, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)

	go func() {
		s.logger.Printf("Starting server on %s\n", s.httpServer.Addr)
		s.logger.Println("Available endpoints:")
		s.logger.Println("  GET /calculate?digits=<count>&algo=<algorithm>")
		s.logger.Println("  GET /health")
		s.logger.Println("  GET /algorithms")
		s.logger.Println("  GET /metrics")

		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-s.shutdownSignal:
		s.logger.Println("Shutdown signal received, initiating graceful shutdown...")
	case err := <-errCh:
		return apperrors.NewServerError("server failed to start", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeouts.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return apperrors.NewServerError("failed to gracefully shutdown server", err)
	}

	s.logger.Println("Server stopped gracefully")
	return nil
}
