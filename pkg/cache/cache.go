// Package cache stores solved assignment reports so that repeated runs over
// the same input skip the solver.
//
// Three backends implement [Cache]:
//
//   - [FileCache] keeps JSON entries under a directory, for the CLI.
//   - [RedisCache] shares entries between processes, for the HTTP server.
//   - [NullCache] stores nothing, for --no-cache and tests.
//
// Keys are built by a [Keyer] from a hash of the normalized input and the
// options that influence the result, so a change to either misses.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long a cached report stays valid.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the stored value and true, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}
