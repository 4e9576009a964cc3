package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation, so
// multiple server instances can share one Redis without colliding.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
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

// FrameKey generates a prefixed key for rendered frame caching.
func (k *ScopedKeyer) FrameKey(planHash, view string, width, height int, visible []string) string {
	return k.prefix + k.inner.FrameKey(planHash, view, width, height, visible)
}

// PlanKey generates a prefixed key for stored plan caching.
func (k *ScopedKeyer) PlanKey(name string) string {
	return k.prefix + k.inner.PlanKey(name)
}
