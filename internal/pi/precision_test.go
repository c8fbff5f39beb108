package pi

import (
	"testing"

	apperrors "github.com/xmb505/SuperPi/internal/errors"
)

func TestValidateDigits(t *testing.T) {
	testCases := []struct {
		name    string
		digits  uint64
		wantErr bool
	}{
		{"zero digits", 0, true},
		{"one digit", 1, false},
		{"typical request", 1_000_000, false},
		{"maximum", MaxDigits, false},
		{"just above maximum", MaxDigits + 1, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateDigits(tc.digits)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ValidateDigits(%d) error = %v, wantErr %v", tc.digits, err, tc.wantErr)
			}
			if err != nil && !apperrors.IsInvalidDigitCount(err) {
				t.Errorf("ValidateDigits(%d) returned %T, want InvalidDigitCountError", tc.digits, err)
			}
		})
	}
}

func TestDecimalBits(t *testing.T) {
	// ceil(d * log2(10)); log2(10) ≈ 3.3219.
	testCases := []struct {
		digits uint64
		want   uint
	}{
		{1, 4},
		{10, 34},
		{100, 333},
		{1000, 3322},
	}

	for _, tc := range testCases {
		if got := decimalBits(tc.digits); got != tc.want {
			t.Errorf("decimalBits(%d) = %d, want %d", tc.digits, got, tc.want)
		}
	}
}

func TestPlanPrecision(t *testing.T) {
	t.Run("default margin applied when zero", func(t *testing.T) {
		got := PlanPrecision(100, 0)
		want := decimalBits(100) + DefaultPrecisionMargin
		if got != want {
			t.Errorf("PlanPrecision(100, 0) = %d, want %d", got, want)
		}
	})

	t.Run("explicit margin respected", func(t *testing.T) {
		got := PlanPrecision(100, 64)
		want := decimalBits(100) + 64
		if got != want {
			t.Errorf("PlanPrecision(100, 64) = %d, want %d", got, want)
		}
	})

	t.Run("monotonically non-decreasing in digits", func(t *testing.T) {
		prev := uint(0)
		for _, d := range []uint64{1, 2, 10, 100, 1000, 100_000, MaxDigits} {
			got := PlanPrecision(d, 128)
			if got < prev {
				t.Fatalf("PlanPrecision(%d, 128) = %d decreased below %d", d, got, prev)
			}
			prev = got
		}
	})

	t.Run("covers requested digits", func(t *testing.T) {
		// The planned precision must always exceed the bits strictly needed
		// to represent the digits, by at least the margin.
		for _, d := range []uint64{1, 50, 10_000, MaxDigits} {
			if got, floor := PlanPrecision(d, 256), decimalBits(d); got < floor+256 {
				t.Errorf("PlanPrecision(%d, 256) = %d, below floor %d + margin", d, got, floor)
			}
		}
	})
}
