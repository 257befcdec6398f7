// Package reload is the optional dev-mode trigger that keeps derived caches
// consistent with reloaded code. The cache coordinator itself never watches
// the filesystem; this watcher is the external call-in it expects.
package reload

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/routekit/routekit/internal/logging"
	"github.com/routekit/routekit/pkg/cache"
)

const defaultDebounce = 250 * time.Millisecond

// Watcher triggers a full cache invalidation when files under a directory
// change. Events are debounced so a burst of writes produces one pass.
type Watcher struct {
	fsw      *fsnotify.Watcher
	caches   *cache.Coordinator
	logger   *slog.Logger
	debounce time.Duration
}

// Option configures the Watcher.
type Option func(*Watcher)

// WithLogger sets the logger for invalidation outcomes.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// WithDebounce overrides the debounce window.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// NewWatcher watches dir and invalidates caches through the coordinator.
func NewWatcher(dir string, caches *cache.Coordinator, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w := &Watcher{
		fsw:      fsw,
		caches:   caches,
		logger:   logging.NewNop(),
		debounce: defaultDebounce,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start runs the watch loop until ctx is cancelled or the watcher is closed.
func (w *Watcher) Start(ctx context.Context) {
	go w.loop(ctx)
}

func (w *Watcher) loop(ctx context.Context) {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				// Drain a tick that may already have been delivered so the
				// reset window produces exactly one pass per burst.
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error", "err", err)

		case <-fire:
			timer = nil
			fire = nil
			// Invalidation failures are developer-facing; report loudly and
			// keep watching so a fixed reload can try again.
			if err := w.caches.InvalidateAll(); err != nil {
				w.logger.Error("cache invalidation failed", "err", err)
				continue
			}
			w.logger.Info("caches invalidated after reload")
		}
	}
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
