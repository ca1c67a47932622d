// Package cache stores computed layouts so identical requests skip the
// placement pass.
//
// Backends implement [Cache]: [FileCache] for CLI usage, [RedisCache] and
// [MongoCache] for a shared API server, and [NullCache] when caching is
// disabled. [Open] selects a backend from a URL.
//
// Keys come from a [Keyer]. The default keyer hashes the tile-set contents
// together with the layout options, so any change to either produces a new
// key. [ScopedKeyer] prefixes keys to isolate tenants sharing one backend.
package cache

import (
	"context"
	"time"
)

// TTLLayout is the default lifetime of a cached layout.
const TTLLayout = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
