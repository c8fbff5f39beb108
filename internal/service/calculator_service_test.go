package service

import (
	"context"
	"errors"
	"testing"

	"github.com/xmb505/SuperPi/internal/config"
	"github.com/xmb505/SuperPi/internal/pi"
)

func newTestService(maxDigits uint64) *CalculatorService {
	cfg := config.AppConfig{PrecisionMargin: 256, ExtraTerms: 50}
	return NewCalculatorService(pi.NewDefaultFactory(), cfg, maxDigits)
}

func TestCalculatorServiceCalculate(t *testing.T) {
	svc := newTestService(1000)

	digits, err := svc.Calculate(context.Background(), "machin", 20)
	if err != nil {
		t.Fatal(err)
	}
	if digits != "14159265358979323846" {
		t.Errorf("digits = %q", digits)
	}
}

func TestCalculatorServiceMaxDigits(t *testing.T) {
	svc := newTestService(100)

	_, err := svc.Calculate(context.Background(), "machin", 101)
	if !errors.Is(err, ErrMaxDigitsExceeded) {
		t.Errorf("err = %v, want ErrMaxDigitsExceeded", err)
	}

	// A zero limit disables the service cap.
	unlimited := newTestService(0)
	if _, err := unlimited.Calculate(context.Background(), "machin", 200); err != nil {
		t.Errorf("unexpected error with no cap: %v", err)
	}
}

func TestCalculatorServiceUnknownAlgorithm(t *testing.T) {
	svc := newTestService(1000)

	_, err := svc.Calculate(context.Background(), "bbp", 20)
	if err == nil {
		t.Fatal("expected error for unknown algorithm")
	}
}

func TestCalculatorServiceCancellation(t *testing.T) {
	svc := newTestService(0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Calculate(ctx, "agm", 100_000)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
