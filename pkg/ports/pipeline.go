package ports

import "context"

// StageEvent describes one pipeline stage at construction time.
type StageEvent struct {
	// Stage identifies the constructed stage.
	Stage any

	// Source is the stage this one consumes, or nil when the stage is the
	// pipeline's origin.
	Source any

	// Op is the operation name used to construct the stage.
	Op string

	// Args are the construction arguments, as passed to the builder.
	Args []any

	// Meta carries optional auxiliary descriptive metadata.
	Meta map[string]any
}

// StageObserver receives one notification per pipeline stage built.
// The engine's pipeline builder calls OnStageBuilt synchronously, in
// construction order. Implementations must not block.
type StageObserver interface {
	OnStageBuilt(ev StageEvent)
}

// Pipeline is a lazily-built traversal produced by the external engine.
type Pipeline interface {
	// Source returns the data source the pipeline reads from.
	Source() any

	// Materialize drives the pipeline to completion and returns its
	// terminal result. The evaluation runs synchronously and may be
	// long-running; there is no cancellation beyond ctx.
	Materialize(ctx context.Context) (any, error)
}
