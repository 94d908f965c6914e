package cache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemQueryCache(t *testing.T) {
	c := NewQueryCache()

	_, ok := c.Get(1)
	assert.False(t, ok)

	c.Set(1, &CachedQuery{SQL: "SELECT 1", ArgCount: 0})
	q, ok := c.Get(1)
	require.True(t, ok)
	assert.Equal(t, "SELECT 1", q.SQL)
	assert.Equal(t, 1, c.Len())

	c.Purge()
	assert.Equal(t, 0, c.Len())
}

func TestLRUQueryCacheEvicts(t *testing.T) {
	var evicted []uint64
	c, err := NewLRUQueryCache(2, WithEvictionCallback(func(fp uint64) {
		evicted = append(evicted, fp)
	}))
	require.NoError(t, err)

	c.Set(1, &CachedQuery{SQL: "a"})
	c.Set(2, &CachedQuery{SQL: "b"})
	_, _ = c.Get(1) // 2 becomes least recently used
	c.Set(3, &CachedQuery{SQL: "c"})

	assert.Equal(t, []uint64{2}, evicted)
	assert.Equal(t, 2, c.Len())

	_, ok := c.Get(2)
	assert.False(t, ok)
	q, ok := c.Get(3)
	require.True(t, ok)
	assert.Equal(t, "c", q.SQL)
}

func TestLRUQueryCacheRejectsBadSize(t *testing.T) {
	_, err := NewLRUQueryCache(0)
	assert.Error(t, err)
}

func TestQueryCacheConcurrentAccess(t *testing.T) {
	lruCache, err := NewLRUQueryCache(64)
	require.NoError(t, err)

	for _, c := range []QueryCache{NewQueryCache(), lruCache} {
		var wg sync.WaitGroup
		for g := 0; g < 8; g++ {
			wg.Add(1)
			go func(g int) {
				defer wg.Done()
				for i := 0; i < 100; i++ {
					fp := uint64(g*1000 + i%16)
					c.Set(fp, &CachedQuery{SQL: "x"})
					_, _ = c.Get(fp)
				}
			}(g)
		}
		wg.Wait()
		assert.Positive(t, c.Len())
	}
}
