package fingerprint

import (
	"container/list"
	"sync"

	"github.com/lcalzada-xor/airscout/internal/core/domain"
)

// OUICache is an LRU cache for lookup results, keyed by OUI prefix. It
// caches negative results too, so repeatedly seen unregistered prefixes
// do not hit the database on every new device.
type OUICache struct {
	capacity int
	cache    map[string]*list.Element
	lru      *list.List
	hits     int64
	misses   int64
	mu       sync.Mutex
}

type cacheEntry struct {
	key    string
	vendor domain.Vendor
	found  bool
}

// CacheStats reports hit/miss counters for a cache.
type CacheStats struct {
	Hits   int64
	Misses int64
}

// NewOUICache creates a new LRU cache with the specified capacity.
func NewOUICache(capacity int) *OUICache {
	return &OUICache{
		capacity: capacity,
		cache:    make(map[string]*list.Element),
		lru:      list.New(),
	}
}

// Get retrieves a cached lookup result. The second return distinguishes
// "cached" from "not cached"; the cached result itself may be negative.
func (c *OUICache) Get(key string) (domain.Vendor, bool, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.cache[key]; ok {
		c.lru.MoveToFront(elem)
		entry := elem.Value.(*cacheEntry)
		c.hits++
		return entry.vendor, entry.found, true
	}
	c.misses++
	return domain.Vendor{}, false, false
}

// Set stores a lookup result, evicting the least recently used entry when
// over capacity.
func (c *OUICache) Set(key string, vendor domain.Vendor, found bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.cache[key]; ok {
		c.lru.MoveToFront(elem)
		entry := elem.Value.(*cacheEntry)
		entry.vendor = vendor
		entry.found = found
		return
	}

	elem := c.lru.PushFront(&cacheEntry{key: key, vendor: vendor, found: found})
	c.cache[key] = elem

	if c.lru.Len() > c.capacity {
		oldest := c.lru.Back()
		if oldest != nil {
			c.lru.Remove(oldest)
			delete(c.cache, oldest.Value.(*cacheEntry).key)
		}
	}
}

// Len returns the current number of cached entries.
func (c *OUICache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Stats returns the hit/miss counters.
func (c *OUICache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{Hits: c.hits, Misses: c.misses}
}

// Clear removes all cached entries.
func (c *OUICache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string]*list.Element)
	c.lru = list.New()
}
