// Package cache provides byte-level caching for the render pipeline:
// parsed chart documents, resolved legend layouts, and rendered
// artifacts. Backends share one interface; keys are generated by a
// Keyer so every consumer hashes the same inputs the same way.
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface all backends implement. Get reports a
// miss with hit=false and a nil error; errors mean the backend itself
// failed.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Per-stage TTLs. Keys are content hashes, so entries never go stale;
// the TTLs bound storage growth.
const (
	TTLDocument = 24 * time.Hour
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// DocumentKeyOpts are the inputs that change how a chart document
// parses.
type DocumentKeyOpts struct {
	Format string `json:"format"`
}

// LayoutKeyOpts are the inputs that change a resolved layout: the
// legend, the offered box, and the measurer identity (layouts from
// synthetic metrics differ from face-measured ones).
type LayoutKeyOpts struct {
	Legend   string  `json:"legend"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Measurer string  `json:"measurer"`
}

// ArtifactKeyOpts are the inputs that change rendered bytes for one
// layout.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale,omitempty"`
	Canvas string  `json:"canvas,omitempty"`
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// DocumentKey keys a parsed chart document by its content hash.
	DocumentKey(contentHash string, opts DocumentKeyOpts) string

	// LayoutKey keys a resolved layout by the document hash it was
	// built from.
	LayoutKey(docHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys rendered bytes by the layout hash they were
	// painted from.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer generates hash-based keys with stage prefixes.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// DocumentKey generates a key for document caching.
func (k *DefaultKeyer) DocumentKey(contentHash string, opts DocumentKeyOpts) string {
	return hashKey("doc", contentHash, opts)
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(docHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", docHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
