// package repositories provides the cover cache: a process-wide hash → cover
// URL mapping with an in-memory front and optional sqlite persistence.
//
// The cache is append-only during normal operation; entries are never
// invalidated and writes are last-writer-wins.
package repositories

import "sync"

// MemoryCoverCache is a concurrency-safe in-memory cover cache.
//
// Implements services.CoverCache. A benign race that resolves the same hash
// twice under concurrency double-writes the same value, which is acceptable.
type MemoryCoverCache struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemoryCoverCache creates an empty in-memory cover cache.
func NewMemoryCoverCache() *MemoryCoverCache {
	return &MemoryCoverCache{entries: make(map[string]string)}
}

// Lookup returns the cover URL for hash, if present.
func (c *MemoryCoverCache) Lookup(hash string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	url, ok := c.entries[hash]
	return url, ok
}

// Put stores the cover URL for hash, overwriting any previous value.
func (c *MemoryCoverCache) Put(hash, url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[hash] = url
}

// Len returns the number of cached entries.
func (c *MemoryCoverCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Snapshot returns a copy of all entries.
func (c *MemoryCoverCache) Snapshot() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snapshot := make(map[string]string, len(c.entries))
	for hash, url := range c.entries {
		snapshot[hash] = url
	}
	return snapshot
}
