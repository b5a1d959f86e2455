// Package memocache implements a small process-local memoization cache with
// a fixed TTL and an LRU bound on entry count.
//
// It deliberately does NOT coalesce concurrent misses: two goroutines asking
// for the same absent key will both go to the backend. For the low-cardinality
// lookups this cache serves (tenant slugs, settings documents) the redundant
// call is cheaper than single-flight machinery.
package memocache

import (
	"container/list"
	"sync"
	"time"
)

// Cache is a bounded TTL cache. Safe for concurrent use.
type Cache[V any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	maxSize int
	entries map[string]*list.Element
	order   *list.List // front = most recently used

	// now is swappable for tests.
	now func() time.Time
}

type entry[V any] struct {
	key     string
	value   V
	expires time.Time
}

// New creates a cache holding at most maxSize entries, each valid for ttl.
// maxSize <= 0 defaults to 1024; ttl <= 0 defaults to 60 seconds.
func New[V any](maxSize int, ttl time.Duration) *Cache[V] {
	if maxSize <= 0 {
		maxSize = 1024
	}
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &Cache[V]{
		ttl:     ttl,
		maxSize: maxSize,
		entries: make(map[string]*list.Element),
		order:   list.New(),
		now:     time.Now,
	}
}

// Get returns the cached value for key and whether a live entry was found.
// Expired entries are evicted on access.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	el, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	e := el.Value.(*entry[V])
	if c.now().After(e.expires) {
		c.removeLocked(el)
		return zero, false
	}
	c.order.MoveToFront(el)
	return e.value, true
}

// Set stores value under key with the cache's TTL, evicting the least
// recently used entry when the size bound is exceeded.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		e := el.Value.(*entry[V])
		e.value = value
		e.expires = c.now().Add(c.ttl)
		c.order.MoveToFront(el)
		return
	}

	el := c.order.PushFront(&entry[V]{key: key, value: value, expires: c.now().Add(c.ttl)})
	c.entries[key] = el

	for c.order.Len() > c.maxSize {
		c.removeLocked(c.order.Back())
	}
}

// Delete removes key if present. Used for explicit invalidation paths
// (settings writes); the slug cache never calls this.
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[key]; ok {
		c.removeLocked(el)
	}
}

// Len returns the number of entries currently held, including any that
// have expired but not yet been evicted.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *Cache[V]) removeLocked(el *list.Element) {
	if el == nil {
		return
	}
	e := el.Value.(*entry[V])
	delete(c.entries, e.key)
	c.order.Remove(el)
}
