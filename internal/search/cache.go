package search

import (
	"time"

	"skillswap/internal/models"

	lru "github.com/hashicorp/golang-lru/v2"
)

type cacheKey struct {
	revision uint64
	category string
	query    string
}

type cacheItem struct {
	visible   []string
	expiresAt time.Time
}

// Cache memoizes projections per board revision. A mutation bumps the
// revision, so entries for older revisions are simply never read again
// and age out of the LRU.
type Cache struct {
	lruCache *lru.Cache[cacheKey, cacheItem]
	ttl      time.Duration
}

func NewCache(size int, ttl time.Duration) (*Cache, error) {
	l, err := lru.New[cacheKey, cacheItem](size)
	if err != nil {
		return nil, err
	}
	return &Cache{lruCache: l, ttl: ttl}, nil
}

// Visible returns the cached projection for the revision, computing and
// storing it on a miss.
func (c *Cache) Visible(revision uint64, postings []models.Posting, query, category string) []string {
	key := cacheKey{revision: revision, category: category, query: NormalizeQuery(query)}

	if val, ok := c.lruCache.Get(key); ok {
		if time.Now().Before(val.expiresAt) {
			return clone(val.visible)
		}
		c.lruCache.Remove(key)
	}

	visible := Visible(postings, query, category)
	c.lruCache.Add(key, cacheItem{
		visible:   visible,
		expiresAt: time.Now().Add(c.ttl),
	})
	return clone(visible)
}

// Len is the number of cached projections.
func (c *Cache) Len() int {
	return c.lruCache.Len()
}

// Purge drops every cached projection.
func (c *Cache) Purge() {
	c.lruCache.Purge()
}

func clone(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}
