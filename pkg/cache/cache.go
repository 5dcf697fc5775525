// Package cache stores rendered artifacts so unchanged diagrams are not
// rendered twice.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: shared cache for the preview server
//   - [NullCache]: never stores anything (--no-cache)
//
// # Keys
//
// Keys are produced by a [Keyer] from everything that affects the rendered
// bytes: diagram, backend, format, size, sample count and build version.
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.ArtifactKey(cache.ArtifactKeyOpts{Diagram: "loop", Format: "png"})
//	data, ok, err := c.Get(ctx, key)
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long rendered artifacts stay cached.
const DefaultTTL = 24 * time.Hour

// Cache is a byte store with per-entry expiration.
type Cache interface {
	// Get returns the entry for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	ArtifactKey(opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts lists the inputs that determine an artifact's bytes.
type ArtifactKeyOpts struct {
	Diagram string  `json:"diagram"`
	Backend string  `json:"backend"`
	Format  string  `json:"format"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Samples int     `json:"samples"`
	Version string  `json:"version"`
}

// DefaultKeyer hashes ArtifactKeyOpts into "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(opts ArtifactKeyOpts) string {
	return hashKey("artifact", opts)
}
