package routekit

import (
	"context"
	"log/slog"

	"github.com/routekit/routekit/internal/logging"
	"github.com/routekit/routekit/internal/runtime"
	"github.com/routekit/routekit/pkg/cache"
	"github.com/routekit/routekit/pkg/observability"
	"github.com/routekit/routekit/pkg/ports"
	"github.com/routekit/routekit/pkg/registry"
	"github.com/routekit/routekit/pkg/settings"
	"github.com/routekit/routekit/pkg/trace"
)

// Version is the current release of the routekit library.
const Version = "0.3.0"

// Runtime is the high-level entry point for the routekit library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Runtime struct {
	rt *runtime.Runtime
}

// Option defines a functional option for configuring the Runtime.
type Option func(*options)

type options struct {
	logger       *slog.Logger
	logLevel     *slog.Level
	metrics      *observability.Metrics
	settingsFile string
	cacheOwners  []namedOwner
}

type namedOwner struct {
	name  string
	owner ports.CacheOwner
}

// WithLogger sets the diagnostic sink for runtime events.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel enables the standard stderr diagnostic logger at the given
// level. WithLogger takes precedence when both are set.
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logLevel = &level
	}
}

// WithMetrics wires Prometheus counters into the runtime.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithSettingsFile applies a YAML settings file on startup.
func WithSettingsFile(path string) Option {
	return func(o *options) {
		o.settingsFile = path
	}
}

// WithCacheOwner registers a cache owner for hot-reload invalidation.
// Owners are invalidated in registration order.
func WithCacheOwner(name string, owner ports.CacheOwner) Option {
	return func(o *options) {
		o.cacheOwners = append(o.cacheOwners, namedOwner{name: name, owner: owner})
	}
}

// New creates a Runtime. The zero configuration is fully usable: no-op
// logging, default settings, no registered caches.
func New(opts ...Option) (*Runtime, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if o.logger == nil && o.logLevel != nil {
		o.logger = logging.New(*o.logLevel)
	}

	var rtOpts []runtime.Option
	if o.logger != nil {
		rtOpts = append(rtOpts, runtime.WithLogger(o.logger))
	}
	if o.metrics != nil {
		rtOpts = append(rtOpts, runtime.WithMetrics(o.metrics))
	}

	rt := runtime.New(rtOpts...)
	for _, owner := range o.cacheOwners {
		rt.Caches().Register(owner.name, owner.owner)
	}

	if o.settingsFile != "" {
		overrides, err := settings.LoadFile(o.settingsFile)
		if err != nil {
			return nil, err
		}
		if err := overrides.Apply(rt.Settings()); err != nil {
			return nil, err
		}
	}

	return &Runtime{rt: rt}, nil
}

// Connect returns the live handle for (kind, address), opening one through
// factory on first request. For a given key at most one handle exists
// process-wide; the factory runs at most once.
func (r *Runtime) Connect(ctx context.Context, kind, address string, factory ports.Factory) (ports.Shutdownable, error) {
	return r.rt.Connect(ctx, kind, address, factory)
}

// Settings returns the mutable process settings.
func (r *Runtime) Settings() *settings.Store {
	return r.rt.Settings()
}

// Caches returns the cache coordinator, for registering owners after
// construction.
func (r *Runtime) Caches() *cache.Coordinator {
	return r.rt.Caches()
}

// InvalidateCaches clears every registered cache in registration order.
// The first failing hook aborts the pass and propagates.
func (r *Runtime) InvalidateCaches() error {
	return r.rt.InvalidateCaches()
}

// Handles returns every open handle with its registry key, grouped by kind
// in first-seen order. Mainly useful for diagnostics; teardown goes through
// Shutdown.
func (r *Runtime) Handles() []registry.Handle {
	return r.rt.Registry().AllHandles()
}

// Tracer returns the pipeline tracer.
func (r *Runtime) Tracer() *trace.Tracer {
	return r.rt.Tracer()
}

// Shutdown tears down every open handle exactly once, containing and
// reporting per-handle failures. Defer it at the top-level entry point.
func (r *Runtime) Shutdown(ctx context.Context) {
	r.rt.Shutdown(ctx)
}
