// Package cache provides result caching for decomposed lineage graphs.
//
// Decomposition and table building are deterministic over the file
// contents, so results are cached keyed by a content hash of the source
// document. Backends: a file cache for CLI use, a Redis cache for hosted
// deployments, and a null cache for disabling caching.
package cache

import (
	"context"
	"time"
)

// Cache is the interface all caching backends implement.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// TTLs per artifact class. Tracks tables are cheap to rebuild, rendered
// diagrams less so.
const (
	TTLTracks = 24 * time.Hour
	TTLRender = 7 * 24 * time.Hour
)

// TracksKey generates the cache key for a built tracks layer, keyed by the
// content hash of the source document.
func TracksKey(contentHash string) string {
	return hashKey("tracks", contentHash)
}

// RenderKey generates the cache key for a rendered tracklet graph artifact.
func RenderKey(contentHash, format string) string {
	return hashKey("render", contentHash, format)
}
