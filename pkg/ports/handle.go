package ports

import "context"

// Shutdownable is the capability every live engine handle implements.
// Shutdown releases the underlying connection or session. It is called at
// most once by the runtime; the duration and blocking behavior of the call
// are engine-specific and opaque to the caller.
type Shutdownable interface {
	Shutdown(ctx context.Context) error
}

// Factory produces a connected handle for a registry key.
// It is invoked at most once per (kind, address) pair; a failure leaves the
// registry untouched so a later call may retry.
type Factory func(ctx context.Context) (Shutdownable, error)
