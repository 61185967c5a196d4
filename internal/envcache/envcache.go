// Package envcache caches constructed execution environments keyed by
// the resolved version pair, so repeated launches in one process skip
// reinitialization. At most one tool version's environments are
// resident at a time: storing an environment for a different tool
// version wipes everything cached before it.
//
// The cache is intentionally unsynchronized. The loader runs on a
// single goroutine; an embedding host that launches concurrently must
// serialize access externally.
package envcache

import "github.com/isabella232/sbt-zero-seven/internal/boot"

// Cache maps version pairs to environment handles of type E.
type Cache[E any] struct {
	toolVersion string
	entries     map[boot.VersionPair]E
}

// New returns an empty cache.
func New[E any]() *Cache[E] {
	return &Cache[E]{entries: make(map[boot.VersionPair]E)}
}

// Get returns the cached environment for pair. Unstable (snapshot)
// pairs always miss: a snapshot artifact may have changed since the
// environment was built, so it is never assumed cached-valid.
func (c *Cache[E]) Get(pair boot.VersionPair) (E, bool) {
	if pair.Unstable() {
		var zero E
		return zero, false
	}
	env, ok := c.entries[pair]
	return env, ok
}

// Put stores the environment for pair. A pair with a tool version
// different from the resident one clears the whole cache first;
// environments for several runtime versions under the same tool version
// coexist.
func (c *Cache[E]) Put(pair boot.VersionPair, env E) {
	if pair.ToolVersion != c.toolVersion {
		c.entries = make(map[boot.VersionPair]E)
		c.toolVersion = pair.ToolVersion
	}
	c.entries[pair] = env
}

// Len reports the number of cached environments.
func (c *Cache[E]) Len() int {
	return len(c.entries)
}
