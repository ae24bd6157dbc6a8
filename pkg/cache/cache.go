// Package cache keeps short-lived view state between requests.
//
// The admin grid loads the product collection once per visit and then pages
// and mutates it locally; that collection lives here, keyed by the
// server-side session ID. Memory serves a single instance; Redis serves
// several instances behind a load balancer.
//
// TTL semantics for Set:
//   - Positive duration: item expires after this duration
//   - Zero: use the cache's configured default TTL
//   - Negative: item never expires
package cache

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"
)

// Sentinel errors for cache operations.
var (
	// ErrNotFound is returned when a key does not exist or has expired.
	ErrNotFound = errors.New("cache: entry not found")

	// ErrClosed is returned when an operation is attempted on a closed cache.
	ErrClosed = errors.New("cache: closed")

	ErrMarshal   = errors.New("cache: failed to marshal value")
	ErrUnmarshal = errors.New("cache: failed to unmarshal value")
)

// Cache is a generic key-value cache with TTL support.
type Cache[V any] interface {
	// Get returns ErrNotFound if the key does not exist or has expired.
	Get(ctx context.Context, key string) (V, error)
	Set(ctx context.Context, key string, value V, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Loader fills a cache on misses. Concurrent misses for the same key share
// one call to the load function.
type Loader[V any] struct {
	cache Cache[V]
	group singleflight.Group
	ttl   time.Duration
}

// NewLoader wraps c. Values are stored with ttl.
func NewLoader[V any](c Cache[V], ttl time.Duration) *Loader[V] {
	return &Loader[V]{cache: c, ttl: ttl}
}

// Get returns the cached value for key, or ErrNotFound.
func (l *Loader[V]) Get(ctx context.Context, key string) (V, error) {
	return l.cache.Get(ctx, key)
}

// Set stores value for key with the loader's TTL.
func (l *Loader[V]) Set(ctx context.Context, key string, value V) error {
	return l.cache.Set(ctx, key, value, l.ttl)
}

// Delete forgets key.
func (l *Loader[V]) Delete(ctx context.Context, key string) error {
	return l.cache.Delete(ctx, key)
}

// Close closes the wrapped cache.
func (l *Loader[V]) Close() error {
	return l.cache.Close()
}

// GetOrLoad returns the cached value for key or computes it with fn.
// A failed fn caches nothing. A failed cache write is ignored and the loaded
// value is still returned.
func (l *Loader[V]) GetOrLoad(ctx context.Context, key string, fn func(ctx context.Context) (V, error)) (V, error) {
	if v, err := l.cache.Get(ctx, key); err == nil {
		return v, nil
	}

	v, err, _ := l.group.Do(key, func() (any, error) {
		val, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		_ = l.cache.Set(ctx, key, val, l.ttl)
		return val, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}

	return v.(V), nil
}
