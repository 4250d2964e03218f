// Package cache provides caching for optimized plots, rendered artifacts and
// HTTP responses.
//
// # Backends
//
//   - [FileCache]: JSON entries on disk, used by the CLI
//   - [RedisCache]: shared cache for the HTTP server
//   - [NullCache]: caching disabled
//
// # Keys
//
// A [Keyer] derives cache keys from content hashes and the options that
// affect a stage's output, so a changed option never returns a stale entry.
// [ScopedKeyer] prefixes every key for namespace isolation.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value stored under key. A miss is reported as
	// (nil, false, nil), never as an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Default lifetimes per entry kind.
const (
	// TTLHTTP applies to fetched map data.
	TTLHTTP = 24 * time.Hour

	// TTLPlot applies to optimized plot text. Output depends only on the
	// document and options, so entries may live long.
	TTLPlot = 7 * 24 * time.Hour

	// TTLArtifact applies to rendered previews.
	TTLArtifact = 7 * 24 * time.Hour
)

// NullCache stores nothing. Every Get is a miss.
type NullCache struct{}

var _ Cache = NullCache{}

// NewNullCache returns a cache that disables caching.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error { return nil }
func (NullCache) Close() error { return nil }
