// Package cache provides pluggable result caching for pgraph.
//
// The [Cache] interface abstracts over storage backends so the pipeline,
// the HTTP fetcher, and the API server can share one caching contract:
//   - [FileCache]: hash-sharded JSON files for CLI usage
//   - [RedisCache]: Redis for multi-instance deployments
//   - [NullCache]: no-op backend for tests and --no-cache
//
// Cache keys for domain objects are built through a [Keyer], which ties a
// key to the content hash of the problem plus whatever options shaped the
// cached value. Scoping (per user, per deployment) is layered on with
// [ScopedKeyer] rather than baked into the backends.
package cache

import (
	"context"
	"time"
)

// Cache is the storage contract shared by all backends.
// Values are opaque byte slices; callers serialize and deserialize.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and fresh; expired or missing entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a time-to-live. A ttl of zero stores the
	// value without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Time-to-live defaults per cached object class.
//
// Remote problem files can change upstream, so they expire within a day.
// Maximal structures and solve results are pure functions of the problem
// content hash and options, so they only go stale when the inputs change,
// which changes the key; the long TTL just bounds disk growth.
const (
	TTLRemote    = 24 * time.Hour
	TTLStructure = 7 * 24 * time.Hour
	TTLSolve     = 7 * 24 * time.Hour
)
