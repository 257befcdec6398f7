/*
Package routekit is the bootstrap and coordination layer for graph-traversal
applications built atop an external graph engine.

It owns the process-lifetime state the rest of a traversal toolkit hangs off:
live engine connections, mutable display settings, the derived-cache
invalidation protocol, and an optional pipeline trace recorder. The traversal
algebra itself, element wrapping, and query execution are collaborators the
runtime configures and supervises through narrow interfaces (see pkg/ports).

# Concept

A Runtime is an explicit object, not ambient globals: create one per process
(or per test), acquire engine handles through it, and release everything with
one deferred Shutdown. Handles are singletons per (kind, address) key, opened
lazily and torn down exactly once; a failing teardown is contained and
reported so the remaining handles still close.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/routekit/routekit"
		"github.com/routekit/routekit/pkg/adapters/memory"
		"github.com/routekit/routekit/pkg/ports"
	)

	func main() {
		rt, err := routekit.New()
		if err != nil {
			log.Fatal(err)
		}
		ctx := context.Background()
		defer rt.Shutdown(ctx)

		conn, err := rt.Connect(ctx, "memgraph", "people.db", func(ctx context.Context) (ports.Shutdownable, error) {
			return memory.Open("people.db"), nil
		})
		if err != nil {
			log.Fatal(err)
		}

		graph := conn.(*memory.Conn)
		_ = graph.AddVertex(map[string]any{"name": "alice"})

		// Trace the shape of a lazily-built pipeline.
		tracer := rt.Tracer()
		tracer.Arm()
		route := graph.Route(tracer).Step("v").Step("count")
		capture, err := tracer.CaptureResult(ctx, route)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("%d stages, result %v", len(capture.Entries), capture.Result)
	}
*/
package routekit
