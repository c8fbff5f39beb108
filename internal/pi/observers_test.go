package pi

import (
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

// recordingObserver captures updates for assertions.
type recordingObserver struct {
	mu      sync.Mutex
	updates []ProgressUpdate
}

func (o *recordingObserver) Update(calcIndex int, progress float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.updates = append(o.updates, ProgressUpdate{CalculatorIndex: calcIndex, Value: progress})
}

func (o *recordingObserver) snapshot() []ProgressUpdate {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]ProgressUpdate(nil), o.updates...)
}

func TestProgressSubject(t *testing.T) {
	t.Run("register and notify", func(t *testing.T) {
		subject := NewProgressSubject()
		first := &recordingObserver{}
		second := &recordingObserver{}

		subject.Register(first)
		subject.Register(second)
		if subject.ObserverCount() != 2 {
			t.Fatalf("ObserverCount() = %d, want 2", subject.ObserverCount())
		}

		subject.Notify(1, 0.5)
		for _, o := range []*recordingObserver{first, second} {
			got := o.snapshot()
			if len(got) != 1 || got[0].CalculatorIndex != 1 || got[0].Value != 0.5 {
				t.Errorf("observer updates = %v", got)
			}
		}
	})

	t.Run("unregister stops delivery", func(t *testing.T) {
		subject := NewProgressSubject()
		observer := &recordingObserver{}

		subject.Register(observer)
		subject.Unregister(observer)
		subject.Notify(0, 0.9)

		if got := observer.snapshot(); len(got) != 0 {
			t.Errorf("unregistered observer received %v", got)
		}
	})

	t.Run("nil observer ignored", func(t *testing.T) {
		subject := NewProgressSubject()
		subject.Register(nil)
		subject.Unregister(nil)
		if subject.ObserverCount() != 0 {
			t.Errorf("ObserverCount() = %d, want 0", subject.ObserverCount())
		}
	})

	t.Run("as progress reporter", func(t *testing.T) {
		subject := NewProgressSubject()
		observer := &recordingObserver{}
		subject.Register(observer)

		reporter := subject.AsProgressReporter(7)
		reporter(0.25)

		got := observer.snapshot()
		if len(got) != 1 || got[0].CalculatorIndex != 7 || got[0].Value != 0.25 {
			t.Errorf("updates = %v", got)
		}
	})
}

func TestChannelObserver(t *testing.T) {
	t.Run("delivers to channel", func(t *testing.T) {
		ch := make(chan ProgressUpdate, 1)
		observer := NewChannelObserver(ch)

		observer.Update(2, 0.75)

		update := <-ch
		if update.CalculatorIndex != 2 || update.Value != 0.75 {
			t.Errorf("update = %v", update)
		}
	})

	t.Run("drops when channel is full", func(t *testing.T) {
		ch := make(chan ProgressUpdate, 1)
		observer := NewChannelObserver(ch)

		observer.Update(0, 0.1)
		observer.Update(0, 0.2) // buffer full, must not block

		if update := <-ch; update.Value != 0.1 {
			t.Errorf("first update = %v", update)
		}
	})

	t.Run("clamps to 1.0", func(t *testing.T) {
		ch := make(chan ProgressUpdate, 1)
		observer := NewChannelObserver(ch)

		observer.Update(0, 1.5)
		if update := <-ch; update.Value != 1.0 {
			t.Errorf("update = %v, want clamp to 1.0", update)
		}
	})

	t.Run("nil channel", func(t *testing.T) {
		observer := NewChannelObserver(nil)
		observer.Update(0, 0.5) // must not panic
	})
}

func TestLoggingObserver(t *testing.T) {
	observer := NewLoggingObserver(zerolog.Nop(), 0.25)

	// Exercise the throttling path; output goes to the no-op logger.
	observer.Update(0, 0.1)
	observer.Update(0, 0.2)
	observer.Update(0, 0.5)
	observer.Update(0, 1.0)

	if observer.lastLog[0] != 1.0 {
		t.Errorf("lastLog = %v, want 1.0", observer.lastLog[0])
	}
}

func TestMetricsObserver(t *testing.T) {
	observer := NewMetricsObserver()
	defer observer.ResetMetrics()

	observer.Update(0, 0.4)
	observer.Update(1, 0.8)
	observer.Update(0, 0.6)
}
