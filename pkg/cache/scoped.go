package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments can share
// one Redis instance without seeing each other's entries.
//
// Example usage:
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "gridsep:staging:")
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

// SeparationKey generates a prefixed separation key.
func (k *ScopedKeyer) SeparationKey(tilingHash string, opts SeparationKeyOpts) string {
	return k.prefix + k.inner.SeparationKey(tilingHash, opts)
}

// OrdersKey generates a prefixed orders key.
func (k *ScopedKeyer) OrdersKey(tilingHash string, opts OrdersKeyOpts) string {
	return k.prefix + k.inner.OrdersKey(tilingHash, opts)
}
