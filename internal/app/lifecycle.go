package app

import (
	"context"
	"os/signal"
	"syscall"
	"time"
)

// SetupContext creates a context with a timeout applied. A non-positive
// timeout leaves the context unbounded, since π runs are open-ended by
// default. The returned cancel function should be deferred.
func SetupContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// SetupSignals creates a context that will be canceled when the application
// receives SIGINT (Ctrl+C) or SIGTERM, enabling graceful interruption at the
// next round boundary of the running kernel.
func SetupSignals(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
}

// SetupLifecycle combines timeout and signal handling into a single call. The
// returned context is canceled either when the timeout expires or when a
// termination signal is received, whichever happens first.
func SetupLifecycle(ctx context.Context, timeout time.Duration) (context.Context, *CancelFuncs) {
	ctx, cancelTimeout := SetupContext(ctx, timeout)
	ctx, stopSignals := SetupSignals(ctx)

	return ctx, &CancelFuncs{
		CancelTimeout: cancelTimeout,
		StopSignals:   stopSignals,
	}
}

// CancelFuncs holds the cancel functions for lifecycle management. Both
// should be called (typically via defer) to ensure proper cleanup.
type CancelFuncs struct {
	// CancelTimeout cancels the timeout context.
	CancelTimeout context.CancelFunc
	// StopSignals stops listening for OS signals.
	StopSignals context.CancelFunc
}

// Cleanup calls both cancel functions to release resources.
func (c *CancelFuncs) Cleanup() {
	if c.StopSignals != nil {
		c.StopSignals()
	}
	if c.CancelTimeout != nil {
		c.CancelTimeout()
	}
}
