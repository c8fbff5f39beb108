package app

import (
	"context"
	"testing"
	"time"
)

func TestSetupContext(t *testing.T) {
	t.Run("timeout applied", func(t *testing.T) {
		ctx, cancel := SetupContext(context.Background(), time.Hour)
		defer cancel()
		if _, ok := ctx.Deadline(); !ok {
			t.Error("deadline not set")
		}
	})

	t.Run("zero timeout leaves context unbounded", func(t *testing.T) {
		ctx, cancel := SetupContext(context.Background(), 0)
		defer cancel()
		if _, ok := ctx.Deadline(); ok {
			t.Error("deadline set for zero timeout")
		}
	})
}

func TestSetupLifecycleCleanup(t *testing.T) {
	ctx, cancels := SetupLifecycle(context.Background(), time.Hour)
	cancels.Cleanup()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context not canceled after Cleanup")
	}
}

func TestCancelFuncsNilSafe(t *testing.T) {
	(&CancelFuncs{}).Cleanup()
}
