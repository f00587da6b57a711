// Package cache stores rendered chart artifacts.
//
// Rendering a PNG or PDF rasterizes every arc of the chart, so hosts that
// redraw the same data (the HTTP server, repeated CLI runs) keep the bytes
// keyed by a hash of the composed scene and the render options.
//
// Three backends are provided:
//
//   - [FileCache] persists entries under a directory, for the CLI.
//   - [MemoryCache] keeps a bounded number of entries in process, for the
//     server.
//   - [NullCache] stores nothing.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the entry for key and whether it was found. Expired
	// entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Static bool    `json:"static,omitempty"`
	Scale  float64 `json:"scale,omitempty"`
	Prefix string  `json:"prefix,omitempty"`
	Font   string  `json:"font,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// SceneKey identifies a composed scene by its content hash.
	SceneKey(sceneHash string) string

	// ArtifactKey identifies one rendered format of a scene.
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// SceneKey returns "scene:<hash>".
func (DefaultKeyer) SceneKey(sceneHash string) string {
	return "scene:" + sceneHash
}

// ArtifactKey hashes the scene hash with opts.
func (DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sceneHash, opts)
}
