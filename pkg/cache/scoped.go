package cache

// ScopedKeyer wraps a Keyer with a prefix. The CLI scopes keys by build
// version so results cached by an older binary are never served:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "v1.2.0:")
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

// ResultKey generates a prefixed result key.
func (k *ScopedKeyer) ResultKey(content []byte, spec string, opts ResultKeyOpts) string {
	return k.prefix + k.inner.ResultKey(content, spec, opts)
}
