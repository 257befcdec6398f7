// Package trace records the construction-time shape of lazily-evaluated
// traversal pipelines for debugging.
package trace

import (
	"context"
	"sync"

	"github.com/routekit/routekit/pkg/ports"
)

// Entry is one record per pipeline stage constructed while tracing is armed.
// Entries are ordered by construction time, which is not necessarily the
// attachment order: a stage may be built before the stage consuming it.
type Entry struct {
	// Stage identifies the constructed stage.
	Stage any

	// Source is the stage this one reads from, or nil for the pipeline
	// origin.
	Source any

	// Op is the operation name used to construct the stage.
	Op string

	// Args are the construction arguments.
	Args []any

	// Meta carries optional descriptive metadata.
	Meta map[string]any
}

// Capture is the outcome of driving a traced pipeline.
type Capture struct {
	// Source is the data source the pipeline read from.
	Source any

	// Entries is the ordered trace collected during construction and
	// evaluation. Empty when the tracer was never armed.
	Entries []Entry

	// Result is the materialized terminal result.
	Result any
}

// Tracer is an optional diagnostic recorder for pipeline construction.
// It implements ports.StageObserver; while disarmed the observer hook is a
// no-op so ordinary evaluation carries no tracing overhead.
//
// At most one trace session is tracked at a time: arming while already armed
// discards the previous session's entries.
type Tracer struct {
	mu      sync.Mutex
	armed   bool
	entries []Entry
}

// NewTracer creates a disarmed Tracer.
func NewTracer() *Tracer {
	return &Tracer{}
}

// Arm resets the trace session to empty and marks tracing active.
func (t *Tracer) Arm() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.armed = true
	t.entries = nil
}

// Armed reports whether a trace session is active.
func (t *Tracer) Armed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.armed
}

// OnStageBuilt records one stage-construction event into the active session.
// Disarmed, it does nothing.
func (t *Tracer) OnStageBuilt(ev ports.StageEvent) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.armed {
		return
	}
	t.entries = append(t.entries, Entry{
		Stage:  ev.Stage,
		Source: ev.Source,
		Op:     ev.Op,
		Args:   ev.Args,
		Meta:   ev.Meta,
	})
}

// Entries returns a snapshot of the current session, in construction order.
// After a failed Capture the entries recorded up to the failure remain here
// for inspection.
func (t *Tracer) Entries() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	snapshot := make([]Entry, len(t.entries))
	copy(snapshot, t.entries)
	return snapshot
}

// CaptureResult drives p to materialize its result and returns the
// pipeline's source, the trace collected so far, and the result. Tracing
// observes evaluation without altering it: the result is identical whether
// or not the tracer was armed, and a disarmed capture simply returns an
// empty trace.
//
// On success the session is consumed and the tracer returns to disarmed. If
// materialization fails, the error propagates and the session is kept intact
// so the partial trace can be inspected via Entries.
func (t *Tracer) CaptureResult(ctx context.Context, p ports.Pipeline) (*Capture, error) {
	result, err := p.Materialize(ctx)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	entries := t.entries
	t.entries = nil
	t.armed = false
	t.mu.Unlock()

	if entries == nil {
		entries = []Entry{}
	}
	return &Capture{
		Source:  p.Source(),
		Entries: entries,
		Result:  result,
	}, nil
}
