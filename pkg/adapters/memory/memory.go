// Package memory is an in-process graph engine adapter.
// It implements the handle and pipeline contracts without external services,
// which makes it the default backend for tests and examples.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/routekit/routekit/pkg/ports"
)

// ErrClosed is returned when a connection is used after shutdown.
var ErrClosed = errors.New("connection is closed")

// Conn is an in-memory graph connection. Safe for concurrent use.
type Conn struct {
	address string

	mu       sync.RWMutex
	closed   bool
	vertices []map[string]any
}

// Open creates a connection to a fresh in-memory graph identified by address.
func Open(address string) *Conn {
	return &Conn{address: address}
}

// Address returns the address the connection was opened with.
func (c *Conn) Address() string {
	return c.address
}

// AddVertex stores a vertex with the given properties.
func (c *Conn) AddVertex(props map[string]any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	copied := make(map[string]any, len(props))
	for k, v := range props {
		copied[k] = v
	}
	c.vertices = append(c.vertices, copied)
	return nil
}

// Shutdown releases the connection. A second call fails with ErrClosed.
func (c *Conn) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	c.closed = true
	c.vertices = nil
	return nil
}

func (c *Conn) snapshot() ([]map[string]any, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil, ErrClosed
	}
	out := make([]map[string]any, len(c.vertices))
	copy(out, c.vertices)
	return out, nil
}

// stage is one lazily-applied pipeline operation.
type stage struct {
	op   string
	args []any
}

func (s *stage) String() string {
	return fmt.Sprintf("%s(%v)", s.op, s.args)
}

// Route is a lazily-built traversal over the connection's vertices.
// Nothing runs until Materialize; each builder call only records the stage
// and notifies the observer, so an armed tracer sees the construction-time
// shape of the pipeline.
type Route struct {
	conn   *Conn
	obs    ports.StageObserver
	stages []*stage
}

// Route starts a new pipeline on the connection. The observer may be nil;
// a tracer passed here is notified once per stage built.
func (c *Conn) Route(obs ports.StageObserver) *Route {
	return &Route{conn: c, obs: obs}
}

// Step appends one operation to the pipeline and returns the route for
// chaining. Supported ops: "v" (all vertices), "has" (property filter,
// args: key, value), "limit" (args: n), "count".
func (r *Route) Step(op string, args ...any) *Route {
	s := &stage{op: op, args: args}

	var source any
	if len(r.stages) > 0 {
		source = r.stages[len(r.stages)-1]
	}
	if r.obs != nil {
		r.obs.OnStageBuilt(ports.StageEvent{
			Stage:  s,
			Source: source,
			Op:     op,
			Args:   args,
		})
	}

	r.stages = append(r.stages, s)
	return r
}

// Source returns the underlying connection.
func (r *Route) Source() any {
	return r.conn
}

// Materialize drives the pipeline over the current vertex set and returns
// the terminal result: a []map[string]any for element-producing pipelines,
// or an int for "count".
func (r *Route) Materialize(ctx context.Context) (any, error) {
	elements, err := r.conn.snapshot()
	if err != nil {
		return nil, err
	}

	counted := false
	for _, s := range r.stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if counted {
			return nil, fmt.Errorf("stage %s follows a terminal count", s.op)
		}

		switch s.op {
		case "v":
			// Identity over the full vertex set.

		case "has":
			if len(s.args) != 2 {
				return nil, fmt.Errorf("has expects key and value, got %d args", len(s.args))
			}
			key, ok := s.args[0].(string)
			if !ok {
				return nil, fmt.Errorf("has key must be a string, got %T", s.args[0])
			}
			var kept []map[string]any
			for _, el := range elements {
				if el[key] == s.args[1] {
					kept = append(kept, el)
				}
			}
			elements = kept

		case "limit":
			if len(s.args) != 1 {
				return nil, fmt.Errorf("limit expects one argument, got %d", len(s.args))
			}
			n, ok := s.args[0].(int)
			if !ok {
				return nil, fmt.Errorf("limit argument must be an int, got %T", s.args[0])
			}
			if n < 0 {
				return nil, fmt.Errorf("limit must be non-negative, got %d", n)
			}
			if n < len(elements) {
				elements = elements[:n]
			}

		case "count":
			counted = true

		default:
			return nil, fmt.Errorf("unknown pipeline op %q", s.op)
		}
	}

	if counted {
		return len(elements), nil
	}
	return elements, nil
}
