// Package cache memoises query results until the data behind them changes.
package cache

import (
	"fmt"
	"strings"
)

// Key formats for explorer queries
const (
	KeySearch = "search:%s" // search:{criteria}
	KeyPath   = "path:%s"   // path:{joined path}
)

// Cache is an unbounded in-memory memo table with hit/miss accounting.
// Entries never expire; owners call Invalidate when their data changes.
type Cache[V any] struct {
	items  map[string]V
	hits   int64
	misses int64
}

// New creates an empty cache
func New[V any]() *Cache[V] {
	return &Cache[V]{items: make(map[string]V)}
}

// Get retrieves a value. Returns the zero value and false on miss.
func (c *Cache[V]) Get(key string) (V, bool) {
	v, ok := c.items[key]
	if !ok {
		c.misses++
		return v, false
	}
	c.hits++
	return v, true
}

// Set stores a value under key
func (c *Cache[V]) Set(key string, value V) {
	c.items[key] = value
}

// SearchKey returns the cache key for a search over the given criteria fields
func SearchKey(fields ...string) string {
	return fmt.Sprintf(KeySearch, strings.Join(fields, "|"))
}

// PathKey returns the cache key for a path lookup
func PathKey(path []string, subtree bool) string {
	return fmt.Sprintf(KeyPath, strings.Join(path, "/")) + fmt.Sprintf("#%t", subtree)
}

// PathPrefix returns the key prefix shared by every path lookup starting at top
func PathPrefix(top string) string {
	return fmt.Sprintf(KeyPath, top)
}

// Stats returns cache statistics
func (c *Cache[V]) Stats() map[string]any {
	total := c.hits + c.misses
	var hitRate float64
	if total > 0 {
		hitRate = float64(c.hits) / float64(total)
	}
	return map[string]any{
		"hits":      c.hits,
		"misses":    c.misses,
		"hit_rate":  hitRate,
		"key_count": len(c.items),
		"total":     total,
	}
}

// InvalidatePrefix removes every entry whose key starts with prefix
func (c *Cache[V]) InvalidatePrefix(prefix string) {
	for k := range c.items {
		if strings.HasPrefix(k, prefix) {
			delete(c.items, k)
		}
	}
}

// Invalidate removes every entry. Counters are kept.
func (c *Cache[V]) Invalidate() {
	clear(c.items)
}

// Len returns the number of cached entries
func (c *Cache[V]) Len() int {
	return len(c.items)
}
