package redis

import (
	"context"
	"errors"
	"fmt"

	backend "github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by Get when the element is not cached.
var ErrCacheMiss = errors.New("element not cached")

// ElementCache stores wrapped-element payloads under a key prefix so one
// Redis server can back several independent caches. It implements the
// cache coordinator's invalidation hook: Invalidate clears exactly this
// cache's namespace and nothing else.
type ElementCache struct {
	client *backend.Client
	prefix string
}

// NewElementCache creates a cache on the connection under the given prefix.
func NewElementCache(conn *Conn, prefix string) *ElementCache {
	return &ElementCache{
		client: conn.Client(),
		prefix: prefix + ":",
	}
}

func (e *ElementCache) key(id string) string {
	return e.prefix + id
}

// Put stores one element payload.
func (e *ElementCache) Put(ctx context.Context, id string, payload []byte) error {
	if err := e.client.Set(ctx, e.key(id), payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to cache element %s: %w", id, err)
	}
	return nil
}

// Get retrieves one element payload, or ErrCacheMiss.
func (e *ElementCache) Get(ctx context.Context, id string) ([]byte, error) {
	data, err := e.client.Get(ctx, e.key(id)).Bytes()
	if errors.Is(err, backend.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached element %s: %w", id, err)
	}
	return data, nil
}

// Invalidate deletes every key in this cache's namespace. Idempotent: an
// already-empty namespace is a successful no-op.
func (e *ElementCache) Invalidate() error {
	ctx := context.Background()

	var cursor uint64
	for {
		keys, next, err := e.client.Scan(ctx, cursor, e.prefix+"*", 100).Result()
		if err != nil {
			return fmt.Errorf("failed to scan cache namespace %s: %w", e.prefix, err)
		}
		if len(keys) > 0 {
			if err := e.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to clear cache namespace %s: %w", e.prefix, err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
