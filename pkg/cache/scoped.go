package cache

// ScopedKeyer wraps a Keyer with a prefix so that several tenants can share
// one backend. The HTTP server scopes its keys this way when it shares a
// Redis instance with other services.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "penpath:")
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

// HTTPKey generates a prefixed key for HTTP response caching.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

// PlotKey generates a prefixed key for optimized plot caching.
func (k *ScopedKeyer) PlotKey(docHash string, opts PlotKeyOpts) string {
	return k.prefix + k.inner.PlotKey(docHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(plotHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(plotHash, opts)
}
