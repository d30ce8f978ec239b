package cities

import (
	"slices"
	"sync"
)

// DefaultCacheSize bounds the query cache.
const DefaultCacheSize = 1000

// Cache is a bounded FIFO map from normalized query to results. When full,
// the oldest inserted key is evicted; re-setting a key keeps its position.
// It is safe for concurrent use.
type Cache struct {
	mu    sync.Mutex
	cap   int
	items map[string][]string
	order []string
}

// NewCache returns a cache holding at most capacity entries.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &Cache{cap: capacity, items: make(map[string][]string, capacity)}
}

// Get returns a copy of the cached value for key.
func (c *Cache) Get(key string) ([]string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[key]
	return slices.Clone(v), ok
}

// Set stores a copy of v under key, evicting the oldest entry when over
// capacity.
func (c *Cache) Set(key string, v []string) {
	v = slices.Clone(v)
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[key]; ok {
		c.items[key] = v
		return
	}
	c.items[key] = v
	c.order = append(c.order, key)
	for len(c.order) > c.cap {
		oldest := c.order[0]
		c.order[0] = ""
		c.order = c.order[1:]
		delete(c.items, oldest)
	}
}

// Len returns the number of cached keys.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Reset drops every entry.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string][]string, c.cap)
	c.order = nil
}
