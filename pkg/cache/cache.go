package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte payloads under string keys with optional
// expiry. Implementations: FileCache for CLI usage, RedisCache for the
// HTTP server, NullCache to disable caching.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present; expired or corrupt entries count as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any backing resources.
	Close() error
}

// Keyer derives cache keys for the two cacheable artifacts: rendered
// frames and stored plans.
type Keyer interface {
	// FrameKey identifies one rendered frame: the plan content, the
	// camera view, the viewport, and which categories are visible.
	FrameKey(planHash, view string, width, height int, visible []string) string

	// PlanKey identifies a stored plan by name.
	PlanKey(name string) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// FrameKey generates a key for a rendered frame.
func (k *DefaultKeyer) FrameKey(planHash, view string, width, height int, visible []string) string {
	return hashKey("frame", planHash, view, width, height, visible)
}

// PlanKey generates a key for a stored plan.
func (k *DefaultKeyer) PlanKey(name string) string {
	return hashKey("plan", name)
}

var _ Keyer = (*DefaultKeyer)(nil)
