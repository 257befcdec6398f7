package runtime

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/routekit/routekit/pkg/registry"
)

// Shutdown sweeps every handle in the registry and shuts it down exactly
// once. Any failure, error or panic alike, is contained: it is classified
// and reported to the diagnostic sink, and the sweep continues with the next
// handle. A stuck handle blocks the sweep; there is no timeout beyond what
// ctx carries into each handle's own Shutdown.
//
// Subsequent calls are no-ops. After Shutdown returns, further registry
// mutation is meaningless.
func (r *Runtime) Shutdown(ctx context.Context) {
	r.shutdownOnce.Do(func() {
		handles := r.registry.AllHandles()
		r.logger.Debug("shutting down engine handles", "count", len(handles))

		for _, h := range handles {
			r.shutdownHandle(ctx, h)
		}
	})
}

// shutdownHandle attempts one handle's shutdown with full failure
// containment. No retries: shutdown is attempted exactly once per handle.
func (r *Runtime) shutdownHandle(ctx context.Context, h registry.Handle) {
	defer func() {
		if rec := recover(); rec != nil {
			r.reportShutdownFailure(h, "panic", fmt.Sprintf("%v", rec), debug.Stack())
		}
	}()

	if err := h.Conn.Shutdown(ctx); err != nil {
		r.reportShutdownFailure(h, "error", err.Error(), debug.Stack())
	}
}

func (r *Runtime) reportShutdownFailure(h registry.Handle, classification, message string, stack []byte) {
	r.logger.Error("handle shutdown failed",
		"kind", h.Kind,
		"address", h.Address,
		"classification", classification,
		"err", message,
		"stack", string(stack),
	)
	if r.metrics != nil {
		r.metrics.ShutdownFailures.WithLabelValues(classification).Inc()
	}
}
