package cache

import (
	"sync"
)

// CachedQuery is the rendered text of a statement shape. ArgCount is the
// number of placeholders it contains.
type CachedQuery struct {
	SQL      string
	ArgCount int
}

type QueryCache interface {
	Get(fingerprint uint64) (*CachedQuery, bool)
	Set(fingerprint uint64, q *CachedQuery)
	Len() int
	Purge()
}

type memQueryCache struct {
	mu   sync.RWMutex
	data map[uint64]*CachedQuery
}

// NewQueryCache returns an unbounded in-memory cache. Use it when the set
// of statement shapes is known to be small.
func NewQueryCache() QueryCache {
	return &memQueryCache{
		data: make(map[uint64]*CachedQuery, 64),
	}
}

func (c *memQueryCache) Get(f uint64) (*CachedQuery, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	q, ok := c.data[f]
	return q, ok
}

func (c *memQueryCache) Set(f uint64, q *CachedQuery) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[f] = q
}

func (c *memQueryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

func (c *memQueryCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.data)
}
