package runtime_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/routekit/routekit/internal/runtime"
	"github.com/routekit/routekit/pkg/observability"
	"github.com/routekit/routekit/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingHandler captures slog records so tests can assert on the
// diagnostic sink without terminating the process.
type recordingHandler struct {
	mu      sync.Mutex
	records []capturedRecord
}

type capturedRecord struct {
	msg   string
	attrs map[string]string
}

func (h *recordingHandler) Enabled(_ context.Context, _ slog.Level) bool { return true }

func (h *recordingHandler) Handle(_ context.Context, rec slog.Record) error {
	attrs := make(map[string]string)
	rec.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.String()
		return true
	})
	h.mu.Lock()
	h.records = append(h.records, capturedRecord{msg: rec.Message, attrs: attrs})
	h.mu.Unlock()
	return nil
}

func (h *recordingHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(_ string) slog.Handler      { return h }

func (h *recordingHandler) failures() []capturedRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []capturedRecord
	for _, r := range h.records {
		if r.msg == "handle shutdown failed" {
			out = append(out, r)
		}
	}
	return out
}

// testConn counts shutdowns and can fail or panic on demand.
type testConn struct {
	mu        sync.Mutex
	shutdowns int
	fail      error
	panicWith any
}

func (c *testConn) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	c.shutdowns++
	c.mu.Unlock()
	if c.panicWith != nil {
		panic(c.panicWith)
	}
	return c.fail
}

func (c *testConn) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.shutdowns
}

func connect(t *testing.T, rt *runtime.Runtime, kind, address string, conn *testConn) {
	t.Helper()
	_, err := rt.Connect(context.Background(), kind, address, func(ctx context.Context) (ports.Shutdownable, error) {
		return conn, nil
	})
	require.NoError(t, err)
}

func TestRuntime_ShutdownSweepsEveryHandle(t *testing.T) {
	sink := &recordingHandler{}
	rt := runtime.New(runtime.WithLogger(slog.New(sink)))
	ctx := context.Background()

	conns := []*testConn{
		{},
		{fail: errors.New("socket already closed")},
		{},
		{panicWith: "engine assertion"},
		{},
	}
	addrs := []string{"a.db", "b.db", "c.db", "d.db", "e.db"}
	for i, c := range conns {
		connect(t, rt, "memgraph", addrs[i], c)
	}

	rt.Shutdown(ctx)

	for i, c := range conns {
		assert.Equal(t, 1, c.count(), "handle %d must be shut down exactly once", i)
	}

	failures := sink.failures()
	require.Len(t, failures, 2, "one failure per failing handle, sweep never aborts")

	// Reported in registration order within the kind group.
	assert.Equal(t, "b.db", failures[0].attrs["address"])
	assert.Equal(t, "error", failures[0].attrs["classification"])
	assert.Equal(t, "d.db", failures[1].attrs["address"])
	assert.Equal(t, "panic", failures[1].attrs["classification"])
	assert.NotEmpty(t, failures[1].attrs["stack"])
}

func TestRuntime_ShutdownExactlyOnce(t *testing.T) {
	rt := runtime.New()
	ctx := context.Background()

	conn := &testConn{}
	connect(t, rt, "memgraph", "x.db", conn)

	rt.Shutdown(ctx)
	rt.Shutdown(ctx)
	rt.Shutdown(ctx)

	assert.Equal(t, 1, conn.count())
}

func TestRuntime_ConnectReusesHandles(t *testing.T) {
	rt := runtime.New()
	ctx := context.Background()

	calls := 0
	factory := func(ctx context.Context) (ports.Shutdownable, error) {
		calls++
		return &testConn{}, nil
	}

	first, err := rt.Connect(ctx, "memgraph", "shared.db", factory)
	require.NoError(t, err)
	second, err := rt.Connect(ctx, "memgraph", "shared.db", factory)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestRuntime_ConnectFailurePropagates(t *testing.T) {
	rt := runtime.New()
	boom := errors.New("refused")

	_, err := rt.Connect(context.Background(), "remote", "tcp://down:1", func(ctx context.Context) (ports.Shutdownable, error) {
		return nil, boom
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, rt.Registry().Len())
}

func TestRuntime_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)
	rt := runtime.New(runtime.WithMetrics(metrics))
	ctx := context.Background()

	connect(t, rt, "memgraph", "a.db", &testConn{})
	connect(t, rt, "memgraph", "b.db", &testConn{fail: errors.New("nope")})

	require.NoError(t, rt.InvalidateCaches())
	rt.Shutdown(ctx)

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.HandlesCreated.WithLabelValues("memgraph")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ShutdownFailures.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CacheInvalidations.WithLabelValues("ok")))
}

func TestRuntime_InvalidateCachesPropagates(t *testing.T) {
	rt := runtime.New()
	boom := errors.New("resolver cache stuck")

	rt.Caches().Register("resolver", ports.CacheOwnerFunc(func() error { return boom }))

	err := rt.InvalidateCaches()
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}
