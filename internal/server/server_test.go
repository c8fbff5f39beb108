package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xmb505/SuperPi/internal/config"
	"github.com/xmb505/SuperPi/internal/pi"
	"github.com/xmb505/SuperPi/pkg/models"
)

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	cfg := config.AppConfig{
		Port:            "8080",
		PrecisionMargin: 256,
		ExtraTerms:      50,
	}
	return NewServer(pi.NewDefaultFactory(), cfg, opts...)
}

func doRequest(t *testing.T, s *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatal(err)
	}
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp models.HealthResponse
	decodeJSON(t, rec, &resp)
	if resp.Status != "healthy" {
		t.Errorf("status = %q", resp.Status)
	}
	if resp.Timestamp == 0 {
		t.Error("timestamp not set")
	}
}

func TestHandleAlgorithms(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/algorithms")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp models.AlgorithmsResponse
	decodeJSON(t, rec, &resp)

	found := map[string]bool{}
	for _, name := range resp.Algorithms {
		found[name] = true
	}
	if !found["machin"] || !found["agm"] {
		t.Errorf("algorithms = %v", resp.Algorithms)
	}
}

func TestHandleCalculate(t *testing.T) {
	s := newTestServer(t)

	t.Run("computes digits", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/calculate?digits=20&algo=agm")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}

		var resp models.PiResponse
		decodeJSON(t, rec, &resp)
		if resp.Pi != "3.14159265358979323846" {
			t.Errorf("pi = %q", resp.Pi)
		}
		if resp.Algorithm != "agm" || resp.Digits != 20 {
			t.Errorf("metadata = %+v", resp)
		}
		if resp.Error != "" {
			t.Errorf("unexpected error field: %q", resp.Error)
		}
	})

	t.Run("default algorithm is machin", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/calculate?digits=10")
		var resp models.PiResponse
		decodeJSON(t, rec, &resp)
		if resp.Algorithm != "machin" {
			t.Errorf("algorithm = %q", resp.Algorithm)
		}
	})

	t.Run("missing digits parameter", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/calculate")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rec.Code)
		}
		var resp models.ErrorResponse
		decodeJSON(t, rec, &resp)
		if !strings.Contains(resp.Message, "digits") {
			t.Errorf("message = %q", resp.Message)
		}
	})

	t.Run("malformed digits parameter", func(t *testing.T) {
		for _, bad := range []string{"abc", "-5", "1.5"} {
			rec := doRequest(t, s, http.MethodGet, "/calculate?digits="+bad)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("digits=%q status = %d", bad, rec.Code)
			}
		}
	})

	t.Run("digit count above the request limit", func(t *testing.T) {
		limited := newTestServer(t, WithMaxRequestDigits(100))
		rec := doRequest(t, limited, http.MethodGet, "/calculate?digits=101")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rec.Code)
		}
		var resp models.ErrorResponse
		decodeJSON(t, rec, &resp)
		if !strings.Contains(resp.Message, "100") {
			t.Errorf("message = %q", resp.Message)
		}
	})

	t.Run("unknown algorithm reported in payload", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/calculate?digits=10&algo=bbp")
		var resp models.PiResponse
		decodeJSON(t, rec, &resp)
		if resp.Error == "" {
			t.Error("expected error field for unknown algorithm")
		}
		if resp.Pi != "" {
			t.Errorf("pi = %q for failed request", resp.Pi)
		}
	})

	t.Run("method not allowed", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodPost, "/calculate?digits=10")
		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}

func TestHandleMetrics(t *testing.T) {
	s := newTestServer(t)

	// Generate traffic first so the counters exist.
	doRequest(t, s, http.MethodGet, "/health")

	rec := doRequest(t, s, http.MethodGet, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "superpi_requests_total") {
		t.Error("request counter missing from exposition")
	}
}
