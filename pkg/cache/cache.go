// Package cache stores rendered diagram artifacts keyed by the hash of the
// DOT source that produced them.
//
// Rendering through Graphviz is the only expensive step of the pipeline, and
// its output depends on nothing but the DOT text and the output format. A
// cache hit therefore skips the layout engine entirely.
//
// # Backends
//
//   - [NullCache]: stores nothing. This is the default.
//   - [FileCache]: one JSON entry per key under a local directory.
//   - [RedisCache]: shared cache backed by a Redis server.
//
// # Keys
//
// A [Keyer] derives storage keys. [DefaultKeyer] hashes the DOT source
// together with the format; [ScopedKeyer] prefixes another keyer's keys so
// several tenants can share one backend.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long a rendered artifact stays cached.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte store with per-entry expiry.
//
// Get reports a miss as (nil, false, nil); an error means the backend itself
// failed. A zero ttl passed to Set stores the entry without expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey returns the key of the artifact rendered from the DOT source
	// with hash dotHash in the given output format.
	ArtifactKey(dotHash, format string) string
}

// DefaultKeyer produces unprefixed keys of the form "artifact:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates a keyer without a namespace prefix.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(dotHash, format string) string {
	return hashKey("artifact", dotHash, format)
}
