package variants

import (
	"slices"
	"sync"

	"github.com/uber/bp-engine/src/bpengine/entity"
	"go.lsp.dev/uri"
)

const (
	// CacheNone disables caching; every request recomputes its lines.
	CacheNone = "none"
	// CacheRevision keeps results until the document or its breakpoints change.
	CacheRevision = "revision"
)

// Cache stores resolution results. Cached values are shared and must not be mutated.
type Cache interface {
	// Generation returns a token that Put compares against, so results computed across an invalidation are dropped.
	Generation(u uri.URI) uint64
	Get(u uri.URI, stamp int64, lines []int) (map[int][]entity.VariantMatch, bool)
	Put(u uri.URI, generation uint64, stamp int64, lines []int, result map[int][]entity.VariantMatch)
	Invalidate(u uri.URI)
	// Remove drops everything kept for the document. Results computed before the removal are not stored.
	Remove(u uri.URI)
}

// NewCache returns the cache implementation for the configured kind.
func NewCache(kind string) Cache {
	if kind == CacheRevision {
		return &revisionCache{entries: make(map[uri.URI]*revisionEntry)}
	}
	return passThroughCache{}
}

type passThroughCache struct{}

func (passThroughCache) Generation(uri.URI) uint64 { return 0 }

func (passThroughCache) Get(uri.URI, int64, []int) (map[int][]entity.VariantMatch, bool) {
	return nil, false
}

func (passThroughCache) Put(uri.URI, uint64, int64, []int, map[int][]entity.VariantMatch) {}

func (passThroughCache) Invalidate(uri.URI) {}

func (passThroughCache) Remove(uri.URI) {}

type revisionCache struct {
	mu      sync.Mutex
	entries map[uri.URI]*revisionEntry
	// generations is shared by all entries so a recreated entry never reuses a generation.
	generations uint64
}

type revisionEntry struct {
	generation uint64
	stamp      int64
	lines      map[int][]entity.VariantMatch
}

func (c *revisionCache) Generation(u uri.URI) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entry(u).generation
}

func (c *revisionCache) Get(u uri.URI, stamp int64, lines []int) (map[int][]entity.VariantMatch, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[u]
	if !ok || e.stamp != stamp {
		return nil, false
	}
	result := make(map[int][]entity.VariantMatch, len(lines))
	for _, line := range lines {
		matches, ok := e.lines[line]
		if !ok {
			return nil, false
		}
		result[line] = matches
	}
	return result, true
}

func (c *revisionCache) Put(u uri.URI, generation uint64, stamp int64, lines []int, result map[int][]entity.VariantMatch) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[u]
	if !ok || e.generation != generation {
		return
	}
	if e.stamp != stamp {
		e.stamp = stamp
		e.lines = make(map[int][]entity.VariantMatch)
	}
	for _, line := range slices.Compact(slices.Sorted(slices.Values(lines))) {
		e.lines[line] = result[line]
	}
}

func (c *revisionCache) Invalidate(u uri.URI) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.entry(u)
	c.generations++
	e.generation = c.generations
	e.stamp = -1
	e.lines = nil
}

func (c *revisionCache) Remove(u uri.URI) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, u)
}

func (c *revisionCache) entry(u uri.URI) *revisionEntry {
	e, ok := c.entries[u]
	if !ok {
		c.generations++
		e = &revisionEntry{generation: c.generations, stamp: -1}
		c.entries[u] = e
	}
	return e
}
