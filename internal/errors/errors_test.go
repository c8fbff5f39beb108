package apperrors

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestInvalidDigitCountError(t *testing.T) {
	err := NewInvalidDigitCountError(0, 10_000_000)

	if !IsInvalidDigitCount(err) {
		t.Error("IsInvalidDigitCount(err) = false")
	}
	if IsInvalidDigitCount(errors.New("other")) {
		t.Error("IsInvalidDigitCount matched an unrelated error")
	}

	wrapped := fmt.Errorf("running computation: %w", err)
	if !IsInvalidDigitCount(wrapped) {
		t.Error("IsInvalidDigitCount(wrapped) = false")
	}

	var e InvalidDigitCountError
	if !errors.As(err, &e) || e.Digits != 0 || e.Max != 10_000_000 {
		t.Errorf("unexpected payload: %+v", e)
	}
	if !strings.Contains(err.Error(), "10000000") {
		t.Errorf("message does not mention the bound: %q", err.Error())
	}
}

func TestExtractionError(t *testing.T) {
	cause := errors.New("render failed")
	err := NewExtractionError(cause)

	if !errors.Is(err, cause) {
		t.Error("cause not reachable through Unwrap")
	}
	var e ExtractionError
	if !errors.As(err, &e) {
		t.Error("errors.As failed for ExtractionError")
	}
}

func TestCalculationError(t *testing.T) {
	cause := errors.New("did not converge")
	err := CalculationError{Cause: cause}

	if err.Error() != cause.Error() {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("cause not reachable through Unwrap")
	}
}

func TestServerError(t *testing.T) {
	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("bind failed")
		err := NewServerError("server failed to start", cause)
		if !errors.Is(err, cause) {
			t.Error("cause not reachable")
		}
		if !strings.Contains(err.Error(), "bind failed") {
			t.Errorf("Error() = %q", err.Error())
		}
	})

	t.Run("without cause", func(t *testing.T) {
		err := NewServerError("shutdown incomplete", nil)
		if err.Error() != "shutdown incomplete" {
			t.Errorf("Error() = %q", err.Error())
		}
	})
}

func TestWrapError(t *testing.T) {
	if WrapError(nil, "context") != nil {
		t.Error("WrapError(nil) != nil")
	}

	cause := errors.New("boom")
	err := WrapError(cause, "stage %d", 2)
	if !errors.Is(err, cause) {
		t.Error("cause not preserved")
	}
	if !strings.Contains(err.Error(), "stage 2") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestIsContextError(t *testing.T) {
	if !IsContextError(context.Canceled) || !IsContextError(context.DeadlineExceeded) {
		t.Error("context errors not recognized")
	}
	if IsContextError(errors.New("other")) || IsContextError(nil) {
		t.Error("non-context error recognized")
	}
}

func TestHandleCalculationError(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		wantCode int
		wantText string
	}{
		{"nil error", nil, ExitSuccess, ""},
		{"timeout", context.DeadlineExceeded, ExitErrorTimeout, "Timeout"},
		{"canceled", context.Canceled, ExitErrorCanceled, "Canceled"},
		{"invalid digit count", NewInvalidDigitCountError(0, 100), ExitErrorConfig, "Invalid request"},
		{"generic", errors.New("boom"), ExitErrorGeneric, "unexpected error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			code := HandleCalculationError(tc.err, time.Second, &buf, nil)
			if code != tc.wantCode {
				t.Errorf("exit code = %d, want %d", code, tc.wantCode)
			}
			if tc.wantText != "" && !strings.Contains(buf.String(), tc.wantText) {
				t.Errorf("output %q does not contain %q", buf.String(), tc.wantText)
			}
		})
	}
}
