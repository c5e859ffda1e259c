// Package cache provides pluggable byte caching for pipeline results.
//
// Layout and synthesis are deterministic, so their outputs are cached by
// content hash of the model plus the options that shaped them. Three
// backends cover the deployment modes:
//
//   - [FileCache]: local directory cache for CLI usage
//   - [RedisCache]: shared cache for the HTTP server
//   - [NullCache]: disabled caching for tests and --no-cache runs
//
// Keys are namespaced sha256 digests built with [ModelKey], [LayoutKey],
// and [BatchKey]; a changed option or reordered node produces a different
// key, never a stale hit.
package cache

import (
	"context"
	"time"
)

// Cache is the interface all caching backends implement.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss;
	// misses are not errors.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default TTLs per pipeline stage. Models and layouts are cheap to store
// and deterministic to rebuild, so moderate TTLs just bound disk usage.
const (
	TTLModel  = 24 * time.Hour
	TTLLayout = 24 * time.Hour
	TTLBatch  = 6 * time.Hour
)

// Key namespaces for the pipeline stages.
const (
	nsModel  = "model"
	nsLayout = "layout"
	nsBatch  = "batch"
)

// ModelKey builds the cache key for an extracted model, keyed by the hash
// of the raw assistant response text.
func ModelKey(responseHash string) string {
	return hashKey(nsModel, responseHash)
}

// LayoutKey builds the cache key for a layout result.
func LayoutKey(modelHash string, opts any) string {
	return hashKey(nsLayout, modelHash, opts)
}

// BatchKey builds the cache key for a synthesized shape batch.
// Shape ids are fresh per synthesis, so batch cache hits re-mint ids on
// the way out; callers that need fresh ids must bypass this key.
func BatchKey(layoutHash string, opts any) string {
	return hashKey(nsBatch, layoutHash, opts)
}
