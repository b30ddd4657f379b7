package memo

import (
	"container/list"
	"fmt"
	"strings"
	"sync"
)

// DefaultCapacity bounds solver memoization caches.
const DefaultCapacity = 256

// keyPrecision normalizes float keys so values equal to within 1e-6 share an
// entry, keeping repeated solves deterministic across float noise.
const keyPrecision = 6

// Cache is a fixed-capacity LRU keyed by normalized numeric input tuples.
// Safe for concurrent use.
type Cache struct {
	mu    sync.Mutex
	cap   int
	order *list.List // front = most recent
	items map[string]*list.Element
}

type entry struct {
	key   string
	value any
}

// New returns an empty cache. Capacity at or below zero takes the default.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		cap:   capacity,
		order: list.New(),
		items: make(map[string]*list.Element, capacity),
	}
}

// Key builds a cache key from numeric tuple parts, normalized to six
// decimal places.
func Key(parts ...float64) string {
	var b strings.Builder
	for i, p := range parts {
		if i > 0 {
			b.WriteByte('|')
		}
		fmt.Fprintf(&b, "%.*f", keyPrecision, p)
	}
	return b.String()
}

// Get returns the cached value and whether it was present, refreshing its
// recency on a hit.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*entry).value, true
}

// Put stores a value, evicting the least recently used entry once the
// capacity is exceeded.
func (c *Cache) Put(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		el.Value.(*entry).value = value
		c.order.MoveToFront(el)
		return
	}
	c.items[key] = c.order.PushFront(&entry{key: key, value: value})
	if c.order.Len() > c.cap {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(*entry).key)
		}
	}
}

// Len reports the number of live entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Clear empties the cache; tests use it to isolate cases.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.items = make(map[string]*list.Element, c.cap)
}
