package cache

// ScopedKeyer wraps a Keyer with a prefix so that several users of one
// backend (the CLI and a server sharing a Redis instance, say) do not
// overwrite each other's entries.
//
//	serverKeyer := NewScopedKeyer(NewDefaultKeyer(), "server:")
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

// DrawingKey generates a prefixed drawing key.
func (k *ScopedKeyer) DrawingKey(opts DrawingKeyOpts) string {
	return k.prefix + k.inner.DrawingKey(opts)
}

// RenderKey generates a prefixed render key.
func (k *ScopedKeyer) RenderKey(drawingHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(drawingHash, opts)
}
