package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments can share
// one backend without seeing each other's entries.
//
//	k := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer prepends prefix to every key of inner. A nil inner means
// DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// SceneKey implements Keyer.
func (k *ScopedKeyer) SceneKey(snapshotHash string) string {
	return k.prefix + k.inner.SceneKey(snapshotHash)
}

// ArtifactKey implements Keyer.
func (k *ScopedKeyer) ArtifactKey(snapshotHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(snapshotHash, opts)
}
