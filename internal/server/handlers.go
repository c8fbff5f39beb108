package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/xmb505/SuperPi/internal/service"
	"github.com/xmb505/SuperPi/pkg/models"
)

// CalculateParseError carries the HTTP status for a request parsing failure.
type CalculateParseError struct {
	Message    string
	StatusCode int
}

// Error returns the parse error message.
func (e CalculateParseError) Error() string { return e.Message }

// handleHealth responds to health check requests with a 200 OK status and a
// JSON payload indicating the service is healthy.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	s.writeJSONResponse(w, http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Unix(),
	})
}

// handleAlgorithms returns the list of available computation algorithms from
// the internal registry.
func (s *Server) handleAlgorithms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	s.writeJSONResponse(w, http.StatusOK, models.AlgorithmsResponse{
		Algorithms: s.factory.List(),
	})
}

// handleCalculate processes requests to compute digits of π. It parses the
// query parameters 'digits' (the count) and 'algo' (the algorithm), executes
// the computation, and returns the result in JSON format.
func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	digits, algo, err := parseCalculateParams(r)
	if err != nil {
		var parseErr CalculateParseError
		if errors.As(err, &parseErr) {
			s.writeErrorResponse(w, parseErr.StatusCode, parseErr.Message)
		} else {
			s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	start := time.Now()
	result, err := s.service.Calculate(ctx, algo, digits)
	duration := time.Since(start)

	if errors.Is(err, service.ErrMaxDigitsExceeded) {
		s.writeErrorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("Digit count exceeds maximum allowed (%d). This limit prevents resource exhaustion.", s.maxDigits))
		return
	}

	s.writeJSONResponse(w, http.StatusOK, buildCalculateResponse(digits, algo, result, duration, err))
}

// parseCalculateParams extracts and validates the computation parameters from
// the request.
//
// Returns:
//   - digits: The parsed digit count.
//   - algo: The algorithm name (defaults to "machin" if not specified).
//   - err: A CalculateParseError if validation fails, nil otherwise.
func parseCalculateParams(r *http.Request) (digits uint64, algo string, err error) {
	digitsStr := r.URL.Query().Get("digits")
	if digitsStr == "" {
		return 0, "", CalculateParseError{
			Message:    "Missing 'digits' parameter",
			StatusCode: http.StatusBadRequest,
		}
	}

	// ParseUint rejects a leading minus sign, enforcing non-negative input.
	digits, parseErr := strconv.ParseUint(digitsStr, 10, 64)
	if parseErr != nil {
		return 0, "", CalculateParseError{
			Message:    "Invalid 'digits' parameter: must be a positive integer",
			StatusCode: http.StatusBadRequest,
		}
	}

	algo = r.URL.Query().Get("algo")
	if algo == "" {
		algo = "machin"
	}

	return digits, algo, nil
}

// buildCalculateResponse constructs the response payload for a computation.
func buildCalculateResponse(digits uint64, algo, result string, duration time.Duration, err error) models.PiResponse {
	resp := models.PiResponse{
		Digits:    digits,
		Algorithm: algo,
		Duration:  duration.String(),
	}

	if err != nil {
		resp.Error = err.Error()
	} else {
		resp.Pi = "3." + result
	}

	return resp
}

// writeJSONResponse writes a JSON response with the correct content type.
func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Printf("Error encoding JSON response: %v", err)
	}
}

// writeErrorResponse writes a standardized error response.
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	s.writeJSONResponse(w, statusCode, models.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
