package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get when the key does not exist or has expired.
// Callers treat a miss as "recompute", never as a failure.
var ErrMiss = errors.New("cache: key not found")

// Cache defines the caching operations interface.
// This is a port that can be implemented by different cache providers
// (Redis, Memcached, in-memory for tests, etc.).
type Cache interface {
	// Get retrieves a value from the cache by key.
	// Returns ErrMiss when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with the specified key and TTL.
	// TTL of 0 means no expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache by key. Deleting an absent key
	// is not an error.
	Delete(ctx context.Context, key string) error

	// Ping checks if the cache service is reachable.
	Ping(ctx context.Context) error

	// Close closes the cache connection.
	Close() error
}
