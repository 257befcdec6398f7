// Package runtime owns the process-lifetime state of the toolkit: settings,
// the handle registry, the cache coordinator, and the pipeline tracer. It is
// an explicit object rather than ambient globals so multiple instances can
// coexist in tests and multi-threaded callers stay safe.
package runtime

import (
	"context"
	"log/slog"
	"sync"

	"github.com/routekit/routekit/internal/logging"
	"github.com/routekit/routekit/pkg/cache"
	"github.com/routekit/routekit/pkg/observability"
	"github.com/routekit/routekit/pkg/ports"
	"github.com/routekit/routekit/pkg/registry"
	"github.com/routekit/routekit/pkg/settings"
	"github.com/routekit/routekit/pkg/trace"
)

// Runtime coordinates the long-lived resources of one toolkit instance.
type Runtime struct {
	logger   *slog.Logger
	metrics  *observability.Metrics
	settings *settings.Store
	registry *registry.Registry
	caches   *cache.Coordinator
	tracer   *trace.Tracer

	shutdownOnce sync.Once
}

// Option configures the Runtime.
type Option func(*Runtime)

// WithLogger sets the diagnostic sink for runtime events, most importantly
// contained shutdown failures.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) {
		r.logger = logger
	}
}

// WithMetrics wires Prometheus counters into the runtime.
func WithMetrics(m *observability.Metrics) Option {
	return func(r *Runtime) {
		r.metrics = m
	}
}

// New creates a Runtime with fresh settings, an empty registry, an empty
// cache coordinator, and a disarmed tracer.
func New(opts ...Option) *Runtime {
	r := &Runtime{
		logger:   logging.NewNop(),
		settings: settings.NewStore(),
		registry: registry.NewRegistry(),
		caches:   cache.NewCoordinator(),
		tracer:   trace.NewTracer(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Settings returns the mutable process settings.
func (r *Runtime) Settings() *settings.Store {
	return r.settings
}

// Registry returns the handle registry.
func (r *Runtime) Registry() *registry.Registry {
	return r.registry
}

// Caches returns the cache coordinator.
func (r *Runtime) Caches() *cache.Coordinator {
	return r.caches
}

// Tracer returns the pipeline tracer.
func (r *Runtime) Tracer() *trace.Tracer {
	return r.tracer
}

// Connect returns the live handle for (kind, address), opening one through
// factory on first request. Construction failures propagate and store
// nothing.
func (r *Runtime) Connect(ctx context.Context, kind, address string, factory ports.Factory) (ports.Shutdownable, error) {
	created := false
	conn, err := r.registry.GetOrCreate(ctx, kind, address, func(ctx context.Context) (ports.Shutdownable, error) {
		created = true
		return factory(ctx)
	})
	if err != nil {
		return nil, err
	}

	if created {
		r.logger.Debug("opened engine handle", "kind", kind, "address", address)
		if r.metrics != nil {
			r.metrics.HandlesCreated.WithLabelValues(kind).Inc()
		}
	}
	return conn, nil
}

// InvalidateCaches runs one invalidation pass over every registered cache
// owner. A failing hook aborts the pass and propagates; reload is a
// developer-facing action that fails loudly.
func (r *Runtime) InvalidateCaches() error {
	err := r.caches.InvalidateAll()
	if r.metrics != nil {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		r.metrics.CacheInvalidations.WithLabelValues(outcome).Inc()
	}
	return err
}
