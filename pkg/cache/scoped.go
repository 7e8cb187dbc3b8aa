package cache

// ScopedKeyer wraps a Keyer with a prefix, giving separate cache
// namespaces to callers sharing one backend (per-corpus scopes on a
// shared redis, isolated keys in tests).
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

// ReportKey generates a prefixed key for a cached structural report.
func (k *ScopedKeyer) ReportKey(graphHash string, opts ReportKeyOpts) string {
	return k.prefix + k.inner.ReportKey(graphHash, opts)
}

// RenderKey generates a prefixed key for a cached rendered artifact.
func (k *ScopedKeyer) RenderKey(graphHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(graphHash, opts)
}
