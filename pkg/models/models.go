// Package models defines the shared data transfer objects of the HTTP API.
// They are kept in pkg/ so API consumers can import them without reaching
// into internal packages.
package models

// PiResponse is the JSON payload returned by the /calculate endpoint.
type PiResponse struct {
	// Digits is the requested number of fractional digits.
	Digits uint64 `json:"digits"`
	// Algorithm is the name of the numerical method used.
	Algorithm string `json:"algorithm"`
	// Duration is the computation duration in Go duration format.
	Duration string `json:"duration"`
	// Pi is the value as "3." followed by the fractional digits. Empty when
	// an error occurred.
	Pi string `json:"pi,omitempty"`
	// Error describes the failure, if any.
	Error string `json:"error,omitempty"`
}

// ErrorResponse is the standardized JSON error payload.
type ErrorResponse struct {
	// Error is the HTTP status text.
	Error string `json:"error"`
	// Message is a human-readable description of the problem.
	Message string `json:"message"`
}

// AlgorithmsResponse lists the registered algorithm names.
type AlgorithmsResponse struct {
	Algorithms []string `json:"algorithms"`
}

// HealthResponse is the payload of the /health endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
}
