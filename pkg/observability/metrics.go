// Package observability exposes runtime counters and the debug HTTP surface.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the runtime's Prometheus collectors.
type Metrics struct {
	// HandlesCreated counts engine handles opened, by backend kind.
	HandlesCreated *prometheus.CounterVec

	// ShutdownFailures counts contained failures during the exit sweep, by
	// classification (error or panic).
	ShutdownFailures *prometheus.CounterVec

	// CacheInvalidations counts invalidate-all passes, by outcome.
	CacheInvalidations *prometheus.CounterVec
}

// NewMetrics creates and registers the runtime collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HandlesCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "routekit_handles_created_total",
				Help: "Total number of engine handles opened",
			},
			[]string{"kind"},
		),
		ShutdownFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "routekit_handle_shutdown_failures_total",
				Help: "Total number of contained handle shutdown failures",
			},
			[]string{"classification"},
		),
		CacheInvalidations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "routekit_cache_invalidations_total",
				Help: "Total number of cache invalidation passes",
			},
			[]string{"outcome"},
		),
	}
	reg.MustRegister(m.HandlesCreated, m.ShutdownFailures, m.CacheInvalidations)
	return m
}
