package repositories

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// PersistentCoverCache implements services.CoverCache with an in-memory map
// warmed from and written through to a CoverRepository.
//
// Lookups never touch the database; writes go to memory first and persistence
// failures are logged rather than surfaced, since the memory entry already
// satisfies the cache contract for the process lifetime.
type PersistentCoverCache struct {
	mem    *MemoryCoverCache
	repo   *CoverRepository
	logger *log.Logger
}

// NewPersistentCoverCache creates a cover cache warmed from the repository.
func NewPersistentCoverCache(repo *CoverRepository, logger *log.Logger) (*PersistentCoverCache, error) {
	mem := NewMemoryCoverCache()

	persisted, err := repo.All()
	if err != nil {
		return nil, fmt.Errorf("failed to warm cover cache: %w", err)
	}
	for hash, url := range persisted {
		mem.Put(hash, url)
	}

	return &PersistentCoverCache{mem: mem, repo: repo, logger: logger}, nil
}

// Lookup returns the cover URL for hash, if present.
func (c *PersistentCoverCache) Lookup(hash string) (string, bool) {
	return c.mem.Lookup(hash)
}

// Put stores the cover URL in memory and writes it through to the repository.
func (c *PersistentCoverCache) Put(hash, url string) {
	c.mem.Put(hash, url)
	if err := c.repo.Upsert(hash, url); err != nil && c.logger != nil {
		c.logger.Warn("failed to persist cover", "hash", hash, "err", err)
	}
}

// Len returns the number of cached entries.
func (c *PersistentCoverCache) Len() int {
	return c.mem.Len()
}

// Snapshot returns a copy of all in-memory entries.
func (c *PersistentCoverCache) Snapshot() map[string]string {
	return c.mem.Snapshot()
}
