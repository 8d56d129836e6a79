package cache

// ScopedKeyer wraps a Keyer with a prefix so separate deployments or
// tenants sharing a Redis instance get isolated namespaces.
//
// Example usage:
//
//	// Per-instance keys on a shared cache
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "lab7:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every
// generated key. A nil inner keyer falls back to the default.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// PlanKey generates a prefixed key for a generated plan.
func (k *ScopedKeyer) PlanKey(designHash string, opts PlanKeyOpts) string {
	return k.prefix + k.inner.PlanKey(designHash, opts)
}

// ArtifactKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) ArtifactKey(planHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(planHash, opts)
}
