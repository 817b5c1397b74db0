// Package cache provides pluggable caching for pipeline stages.
//
// A Cache stores opaque byte payloads under string keys with optional TTLs.
// A Keyer derives those keys from stage inputs so that identical inputs hit
// the same entry: parsed records key on source bytes, layouts key on the
// record plus layout options, rendered artifacts key on the layout plus
// render options.
package cache

import (
	"context"
	"time"
)

// Default TTLs per stage. Parsed records and site scans are pure functions
// of their inputs so they keep long TTLs; artifacts are larger and cheaper
// to recompute from a cached layout.
const (
	TTLRecord   = 30 * 24 * time.Hour
	TTLSites    = 30 * 24 * time.Hour
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The boolean reports whether the key was found;
	// a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// RecordKey generates a key for a parsed record, derived from the raw
	// source bytes.
	RecordKey(sourceHash string) string

	// SitesKey generates a key for restriction-site scan results.
	SitesKey(recordHash string, opts SitesKeyOpts) string

	// LayoutKey generates a key for a computed layout.
	LayoutKey(recordHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// SitesKeyOpts captures the inputs that change a site scan result.
type SitesKeyOpts struct {
	Enzymes  []string
	Circular bool
}

// LayoutKeyOpts captures the inputs that change a computed layout.
type LayoutKeyOpts struct {
	View      string
	Width     float64
	Height    float64
	Enzymes   []string
	FontSize  float64
	RowHeight float64
}

// ArtifactKeyOpts captures the inputs that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format string
	Style  string
	Scale  float64
}

// DefaultKeyer generates unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a keyer with no scope prefix.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// RecordKey implements Keyer.
func (k *DefaultKeyer) RecordKey(sourceHash string) string {
	return hashKey("record", sourceHash)
}

// SitesKey implements Keyer.
func (k *DefaultKeyer) SitesKey(recordHash string, opts SitesKeyOpts) string {
	return hashKey("sites", recordHash, opts)
}

// LayoutKey implements Keyer.
func (k *DefaultKeyer) LayoutKey(recordHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", recordHash, opts)
}

// ArtifactKey implements Keyer.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
