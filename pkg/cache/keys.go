package cache

// Keyer builds cache keys for the domain objects pgraph caches.
// Implementations must be deterministic: the same inputs always produce
// the same key, across processes and releases.
type Keyer interface {
	// HTTPKey builds a key for a cached HTTP response.
	HTTPKey(namespace, key string) string

	// ProblemKey builds a key for a parsed problem document,
	// from the content hash of its canonical serialization.
	ProblemKey(problemHash string) string

	// StructureKey builds a key for a maximal-structure result.
	StructureKey(problemHash string, opts StructureKeyOpts) string

	// SolveKey builds a key for a completed solve.
	SolveKey(problemHash string, opts SolveKeyOpts) string
}

// StructureKeyOpts captures the inputs, beyond the problem itself, that
// change a maximal-structure result.
type StructureKeyOpts struct {
	// Base holds the names of the units the structure was restricted to.
	// Empty means the whole problem.
	Base []string `json:"base,omitempty"`
}

// SolveKeyOpts captures the solve options that change retained solutions.
//
// Worker count and traversal strategy are deliberately excluded: the
// retained solution set is the same regardless of either, so including
// them would only fragment the cache.
type SolveKeyOpts struct {
	MaxSolutions int     `json:"max_solutions"`
	Bound        string  `json:"bound"`
	MinActivity  float64 `json:"min_activity,omitempty"`
}

// DefaultKeyer is the standard key scheme: a short class prefix plus the
// problem hash, with option structs folded in by hashing.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// HTTPKey generates a key for HTTP response caching.
func (k *DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// ProblemKey generates a key for a parsed problem document.
func (k *DefaultKeyer) ProblemKey(problemHash string) string {
	return "problem:" + problemHash
}

// StructureKey generates a key for a maximal-structure result.
func (k *DefaultKeyer) StructureKey(problemHash string, opts StructureKeyOpts) string {
	return hashKey("msg:"+problemHash, opts)
}

// SolveKey generates a key for a completed solve.
func (k *DefaultKeyer) SolveKey(problemHash string, opts SolveKeyOpts) string {
	return hashKey("solve:"+problemHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation, for
// example per deployment or per user when several share one Redis.
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

// ProblemKey generates a prefixed key for a parsed problem document.
func (k *ScopedKeyer) ProblemKey(problemHash string) string {
	return k.prefix + k.inner.ProblemKey(problemHash)
}

// StructureKey generates a prefixed key for a maximal-structure result.
func (k *ScopedKeyer) StructureKey(problemHash string, opts StructureKeyOpts) string {
	return k.prefix + k.inner.StructureKey(problemHash, opts)
}

// SolveKey generates a prefixed key for a completed solve.
func (k *ScopedKeyer) SolveKey(problemHash string, opts SolveKeyOpts) string {
	return k.prefix + k.inner.SolveKey(problemHash, opts)
}
