// Package registry is the process-wide store of live graph engine handles,
// keyed by backend kind and address.
package registry

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/routekit/routekit/pkg/ports"
)

// Handle is one live engine connection together with its registry key.
type Handle struct {
	Kind    string
	Address string
	Conn    ports.Shutdownable
}

// Registry manages live engine handles as a two-level (kind, address)
// mapping. For a given key at most one handle exists at a time; a lookup for
// an unseen kind synthesizes the inner mapping rather than failing.
//
// Safe for concurrent use. Concurrent GetOrCreate calls for the same key are
// deduplicated so the factory still runs at most once.
type Registry struct {
	mu    sync.RWMutex
	conns map[string]map[string]ports.Shutdownable

	// Registration order, preserved for the shutdown sweep.
	kinds     []string
	addresses map[string][]string

	sf singleflight.Group
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		conns:     make(map[string]map[string]ports.Shutdownable),
		addresses: make(map[string][]string),
	}
}

// GetOrCreate returns the handle stored for (kind, address), creating it via
// factory on first request. The factory is invoked at most once per key; if
// it fails, nothing is stored and the error propagates, so a later call may
// retry with a fresh factory.
func (r *Registry) GetOrCreate(ctx context.Context, kind, address string, factory ports.Factory) (ports.Shutdownable, error) {
	// Quote both parts so keys like ("a", "b/c") and ("a/b", "c") never
	// collapse into one flight.
	key := fmt.Sprintf("%q/%q", kind, address)

	r.mu.RLock()
	conn, ok := r.conns[kind][address]
	r.mu.RUnlock()
	if ok {
		return conn, nil
	}

	v, err, _ := r.sf.Do(key, func() (any, error) {
		// Recheck under the flight: a previous flight may have stored it.
		r.mu.RLock()
		existing, ok := r.conns[kind][address]
		r.mu.RUnlock()
		if ok {
			return existing, nil
		}

		created, err := factory(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s handle at %s: %w", kind, address, err)
		}

		r.mu.Lock()
		inner, ok := r.conns[kind]
		if !ok {
			inner = make(map[string]ports.Shutdownable)
			r.conns[kind] = inner
			r.kinds = append(r.kinds, kind)
		}
		inner[address] = created
		r.addresses[kind] = append(r.addresses[kind], address)
		r.mu.Unlock()

		return created, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(ports.Shutdownable), nil
}

// Lookup returns the stored handle for (kind, address) without creating one.
func (r *Registry) Lookup(kind, address string) (ports.Shutdownable, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	conn, ok := r.conns[kind][address]
	return conn, ok
}

// Len returns the number of stored handles.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, inner := range r.conns {
		n += len(inner)
	}
	return n
}

// AllHandles returns every stored handle as a flat sequence, grouped by kind
// in first-seen order and by address in registration order within each kind.
// Used by the shutdown sweep; there is no per-key removal, an entry lives
// until the runtime shuts down.
func (r *Registry) AllHandles() []Handle {
	r.mu.RLock()
	defer r.mu.RUnlock()

	handles := make([]Handle, 0, len(r.kinds))
	for _, kind := range r.kinds {
		for _, address := range r.addresses[kind] {
			handles = append(handles, Handle{
				Kind:    kind,
				Address: address,
				Conn:    r.conns[kind][address],
			})
		}
	}
	return handles
}
