package cache

// ScopedKeyer prefixes every key of an inner Keyer, keeping the entries of
// one caller apart from another's in a shared backend.
//
//	apiKeyer := NewScopedKeyer(NewDefaultKeyer(), "api:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// A nil inner keyer means DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ResultKey returns the prefixed inner result key.
func (k *ScopedKeyer) ResultKey(inputHash string, opts ResultKeyOpts) string {
	return k.prefix + k.inner.ResultKey(inputHash, opts)
}

// SolveKey returns the prefixed inner solve key.
func (k *ScopedKeyer) SolveKey(matrixHash string) string {
	return k.prefix + k.inner.SolveKey(matrixHash)
}
