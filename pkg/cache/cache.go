// Package cache stores exported images so identical DOT documents are laid
// out by Graphviz only once.
//
// Keys come from a [Keyer] and combine the hash of the DOT text with the
// export options. Three backends are available: [NullCache] (disabled),
// [MemoryCache] (the serve command) and [FileCache] (the CLI).
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long exported artifacts are kept. DOT output is
// deterministic, so the same key always maps to the same bytes.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte store with expiring entries.
type Cache interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
