// Package kv is the narrow key-value contract the cache, rate limiter, and
// job store share. Redis backs it in production; the in-memory store backs
// tests.
package kv

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound reports a missing key.
var ErrNotFound = errors.New("kv: not found")

// Store is a TTL'd byte store. Implementations must be safe for concurrent
// use.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
	Expire(ctx context.Context, key string, ttl time.Duration) error
	// CompareAndSwap writes val only when the current value is byte-equal
	// to old; a nil old means the key must be absent. Returns whether the
	// swap happened.
	CompareAndSwap(ctx context.Context, key string, old, val []byte, ttl time.Duration) (bool, error)
	Ping(ctx context.Context) error
	Close() error
}
