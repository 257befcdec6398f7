// Package cache coordinates the independent derived caches of the toolkit
// (element wrappers, resolver) so a hot-reload can invalidate them all in one
// call.
package cache

import (
	"fmt"
	"sync"

	"github.com/routekit/routekit/pkg/ports"
)

type registeredOwner struct {
	name  string
	owner ports.CacheOwner
}

// Coordinator knows the set of cache owners in the system and invalidates
// them all on demand. Owners are invoked in registration order.
//
// Coordinator does not watch for code changes itself; it is driven by an
// external reload trigger.
type Coordinator struct {
	mu     sync.Mutex
	owners []registeredOwner
}

// NewCoordinator creates a Coordinator with no registered owners.
func NewCoordinator() *Coordinator {
	return &Coordinator{}
}

// Register adds a cache owner under a diagnostic name.
// Registration order is the invalidation order.
func (c *Coordinator) Register(name string, owner ports.CacheOwner) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.owners = append(c.owners, registeredOwner{name: name, owner: owner})
}

// Names returns the registered owner names in invalidation order.
func (c *Coordinator) Names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, len(c.owners))
	for i, o := range c.owners {
		names[i] = o.name
	}
	return names
}

// InvalidateAll calls every registered owner's invalidation hook exactly
// once, in registration order. The first failure aborts the remaining hooks
// and propagates to the caller: reload is a developer-driven action where
// failing loudly beats a silently inconsistent cache. This is deliberately
// asymmetric with the shutdown sweep, which always finishes.
func (c *Coordinator) InvalidateAll() error {
	c.mu.Lock()
	owners := make([]registeredOwner, len(c.owners))
	copy(owners, c.owners)
	c.mu.Unlock()

	for _, o := range owners {
		if err := o.owner.Invalidate(); err != nil {
			return fmt.Errorf("failed to invalidate %s cache: %w", o.name, err)
		}
	}
	return nil
}
