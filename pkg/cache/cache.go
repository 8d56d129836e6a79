// Package cache provides content-addressed caching for generated
// plans and rendered artifacts.
//
// Plan generation is deterministic, so cache entries are keyed by a
// hash of the full request: the same plate, patterns and element cap
// always map to the same key. Backends include a file cache for CLI
// usage, a Redis cache for server deployments, and a null cache that
// disables caching entirely.
package cache

import (
	"context"
	"time"
)

// TTLs for the two cached stages. Entries are content addressed, so
// these bound disk and memory growth rather than staleness.
const (
	// TTLPlan is how long generated plans are kept.
	TTLPlan = 7 * 24 * time.Hour

	// TTLArtifact is how long rendered outputs (SVG, DXF, JSON, PDF,
	// PNG) are kept.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the storage interface shared by the CLI, API and pipeline.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given time-to-live. A non-positive
	// ttl stores the value without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}

// PlanKeyOpts are the generation parameters that distinguish plans
// built from the same design.
type PlanKeyOpts struct {
	MaxElements int
}

// ArtifactKeyOpts are the render parameters that distinguish artifacts
// of the same plan.
type ArtifactKeyOpts struct {
	Format     string
	Title      string
	Background string
	Compact    bool
	FlatLayers bool
	Scale      float64
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// PlanKey generates a key for a generated plan. designHash is the
	// content hash of the plate and pattern configuration.
	PlanKey(designHash string, opts PlanKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact. planHash is
	// the content hash of the serialized plan.
	ArtifactKey(planHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces hashed, prefixed cache keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// PlanKey generates a key for a generated plan.
func (k *DefaultKeyer) PlanKey(designHash string, opts PlanKeyOpts) string {
	return hashKey("plan", designHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(planHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", planHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
