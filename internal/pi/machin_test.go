package pi

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// testOptions keeps kernel test runs fast: a modest margin and term surplus is
// plenty for double-digit requests.
func testOptions() Options {
	return Options{
		PrecisionMargin:      256,
		ExtraTerms:           50,
		ConvergenceGuardBits: 32,
		Milestone:            func(uint64, time.Duration) {},
	}
}

func TestMachinSeriesKnownDigits(t *testing.T) {
	kernel := &MachinSeries{}

	for _, d := range []uint64{1, 20, 50, 100} {
		value, err := kernel.CalculateCore(context.Background(), nil, d, testOptions())
		if err != nil {
			t.Fatalf("CalculateCore(%d): %v", d, err)
		}
		got, err := ExtractDigits(value, d)
		if err != nil {
			t.Fatalf("ExtractDigits(%d): %v", d, err)
		}
		if want := piDigits100[:d]; got != want {
			t.Errorf("digits(%d) = %q, want %q", d, got, want)
		}
	}
}

func TestMachinSeriesCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	acquiredBefore, releasedBefore := poolBalance()

	kernel := &MachinSeries{}
	_, err := kernel.CalculateCore(ctx, nil, 1000, testOptions())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}

	acquiredAfter, releasedAfter := poolBalance()
	if acquiredAfter-acquiredBefore != releasedAfter-releasedBefore {
		t.Errorf("working values leaked on cancellation: acquired %d, released %d",
			acquiredAfter-acquiredBefore, releasedAfter-releasedBefore)
	}
}

func TestMachinSeriesReleasesStateOnSuccess(t *testing.T) {
	acquiredBefore, releasedBefore := poolBalance()

	kernel := &MachinSeries{}
	if _, err := kernel.CalculateCore(context.Background(), nil, 25, testOptions()); err != nil {
		t.Fatal(err)
	}

	acquiredAfter, releasedAfter := poolBalance()
	if acquiredAfter-acquiredBefore != releasedAfter-releasedBefore {
		t.Errorf("working values leaked on success: acquired %d, released %d",
			acquiredAfter-acquiredBefore, releasedAfter-releasedBefore)
	}
}

func TestMachinSeriesProgressMonotone(t *testing.T) {
	var reported []float64
	reporter := func(p float64) { reported = append(reported, p) }

	kernel := &MachinSeries{}
	if _, err := kernel.CalculateCore(context.Background(), reporter, 30, testOptions()); err != nil {
		t.Fatal(err)
	}
	if len(reported) == 0 {
		t.Fatal("no progress reported")
	}
	for i := 1; i < len(reported); i++ {
		if reported[i] < reported[i-1] {
			t.Fatalf("progress regressed at %d: %v -> %v", i, reported[i-1], reported[i])
		}
	}
	if last := reported[len(reported)-1]; last > 1.0 {
		t.Errorf("progress exceeded 1.0: %v", last)
	}
}

func TestMachinSeriesName(t *testing.T) {
	kernel := &MachinSeries{}
	if name := kernel.Name(); !strings.Contains(name, "Machin") {
		t.Errorf("Name() = %q", name)
	}
}
