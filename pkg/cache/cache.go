// Package cache provides result caching for derived flow data.
//
// Ordering, grouping, and row projection are cheap but re-run constantly by
// the canvas and the HTTP API, so the pipeline caches derived results keyed
// by a content hash of the graph snapshot. Three backends are provided:
//   - FileCache: directory-backed, for the CLI
//   - RedisCache: shared, for multi-instance server deployments
//   - NullCache: no-op, for tests and --no-cache runs
//
// Keys are generated by a Keyer so every entry point agrees on the layout;
// ScopedKeyer prefixes keys for per-account isolation.
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second result reports whether the key was
	// present; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer generates cache keys for the derived-data kinds the pipeline stores.
type Keyer interface {
	// SequenceKey keys the computed ordering/grouping/projection bundle for
	// a graph content hash.
	SequenceKey(graphHash string) string

	// RowsKey keys a serialized interchange document for a graph content
	// hash and format.
	RowsKey(graphHash, format string) string
}

// DefaultKeyer is the standard key layout.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// SequenceKey generates a key for derived sequence data.
func (k *DefaultKeyer) SequenceKey(graphHash string) string {
	return hashKey("seq", graphHash)
}

// RowsKey generates a key for a serialized export document.
func (k *DefaultKeyer) RowsKey(graphHash, format string) string {
	return hashKey("rows", graphHash, format)
}

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation, so
// different accounts on the shared server get separate cache namespaces.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// SequenceKey generates a prefixed key for derived sequence data.
func (k *ScopedKeyer) SequenceKey(graphHash string) string {
	return k.prefix + k.inner.SequenceKey(graphHash)
}

// RowsKey generates a prefixed key for a serialized export document.
func (k *ScopedKeyer) RowsKey(graphHash, format string) string {
	return k.prefix + k.inner.RowsKey(graphHash, format)
}
