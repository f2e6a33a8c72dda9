// Package cache provides the caching layer for rendered kitchen artifacts.
//
// Planning and pricing are cheap and never cached. Rendering is the stage
// worth keeping: a scene document or SVG is a pure function of the snapshot
// and the render options, so identical requests can be served from a cache.
//
// # Backends
//
//   - [FileCache]: JSON entry files under a directory, for the CLI
//   - [RedisCache]: a Redis server, for one or more API instances
//   - [NullCache]: stores nothing, for tests or when caching is disabled
//
// # Keys
//
// A [Keyer] turns snapshot hashes and render options into cache keys. Keys
// are "prefix:sha256" so they are safe both as Redis keys and, after a
// second hash, as file names. [ScopedKeyer] prefixes every key, which keeps
// separate deployments sharing one Redis apart.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
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

// Default TTLs per entry type.
const (
	TTLScene    = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Keyer generates cache keys.
type Keyer interface {
	// SceneKey keys the JSON scene of a snapshot.
	SceneKey(snapshotHash string) string

	// ArtifactKey keys a rendered artifact of a snapshot.
	ArtifactKey(snapshotHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts holds the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format    string  `json:"format"`
	Scale     float64 `json:"scale,omitempty"`
	Labels    bool    `json:"labels,omitempty"`
	Price     bool    `json:"price,omitempty"`
	Dimension bool    `json:"dimension,omitempty"`
	Compact   bool    `json:"compact,omitempty"`
	Catalog   string  `json:"catalog,omitempty"`
}

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// SceneKey implements Keyer.
func (DefaultKeyer) SceneKey(snapshotHash string) string {
	return hashKey("scene", snapshotHash)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(snapshotHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", snapshotHash, opts)
}
