package cache

// ScopedKeyer wraps a Keyer with a prefix so multiple contexts can share a
// backend without colliding, e.g. one namespace per API tenant or per
// working directory in the CLI.
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

// RecordKey generates a prefixed key for parsed records.
func (k *ScopedKeyer) RecordKey(sourceHash string) string {
	return k.prefix + k.inner.RecordKey(sourceHash)
}

// SitesKey generates a prefixed key for site scan results.
func (k *ScopedKeyer) SitesKey(recordHash string, opts SitesKeyOpts) string {
	return k.prefix + k.inner.SitesKey(recordHash, opts)
}

// LayoutKey generates a prefixed key for layouts.
func (k *ScopedKeyer) LayoutKey(recordHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(recordHash, opts)
}

// ArtifactKey generates a prefixed key for rendered artifacts.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
