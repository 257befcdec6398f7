// Package redis adapts a Redis server as a graph engine backend: a
// registry-managed connection handle plus a namespaced element cache wired
// into the cache coordinator.
package redis

import (
	"context"
	"fmt"

	backend "github.com/redis/go-redis/v9"
)

// Conn is a live Redis-backed engine connection.
type Conn struct {
	client  *backend.Client
	address string
}

// Open connects to the Redis server at address and verifies it answers.
func Open(ctx context.Context, address string) (*Conn, error) {
	client := backend.NewClient(&backend.Options{
		Addr: address,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to reach redis at %s: %w", address, err)
	}
	return &Conn{client: client, address: address}, nil
}

// NewFromClient wraps an existing client, mainly for tests.
func NewFromClient(client *backend.Client, address string) *Conn {
	return &Conn{client: client, address: address}
}

// Address returns the address the connection was opened with.
func (c *Conn) Address() string {
	return c.address
}

// Client exposes the underlying client for collaborators built on the same
// connection, such as ElementCache.
func (c *Conn) Client() *backend.Client {
	return c.client
}

// Shutdown closes the underlying client.
func (c *Conn) Shutdown(ctx context.Context) error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("failed to close redis connection to %s: %w", c.address, err)
	}
	return nil
}
