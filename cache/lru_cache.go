package cache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// LRUQueryCache bounds the number of cached statement shapes.
type LRUQueryCache struct {
	cache     *lru.Cache[uint64, *CachedQuery]
	evictions func(fingerprint uint64)
}

type LRUOption func(*LRUQueryCache)

// WithEvictionCallback is called with the fingerprint of every evicted entry.
func WithEvictionCallback(fn func(fingerprint uint64)) LRUOption {
	return func(c *LRUQueryCache) { c.evictions = fn }
}

func NewLRUQueryCache(size int, opts ...LRUOption) (*LRUQueryCache, error) {
	c := &LRUQueryCache{}
	for _, opt := range opts {
		opt(c)
	}

	inner, err := lru.NewWithEvict(size, func(key uint64, _ *CachedQuery) {
		if c.evictions != nil {
			c.evictions(key)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("query cache: %w", err)
	}
	c.cache = inner
	return c, nil
}

func (c *LRUQueryCache) Get(f uint64) (*CachedQuery, bool) {
	return c.cache.Get(f)
}

func (c *LRUQueryCache) Set(f uint64, q *CachedQuery) {
	c.cache.Add(f, q)
}

func (c *LRUQueryCache) Len() int {
	return c.cache.Len()
}

func (c *LRUQueryCache) Purge() {
	c.cache.Purge()
}

var _ QueryCache = (*LRUQueryCache)(nil)
