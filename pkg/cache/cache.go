// Package cache provides a thread-safe LRU cache for parsed expressions.
//
// The cache is used by the gocalc evaluator when the WithCaching option is
// enabled. It avoids re-parsing the same source string on every call, which
// pays off when the same expressions show up over and over in a stream.
//
// Entries are indexed by the xxhash digest of their source; the source is
// kept alongside so that a digest collision is a miss, never a wrong hit.
// The index holds one entry per digest: setting a key whose digest collides
// with a live entry for a different key replaces that entry. With 64-bit
// digests this costs at worst one extra parse.
//
// # Example
//
//	c := cache.New(1024)
//	expr, err := c.GetOrCompile("1 + 2", compile)
package cache

import (
	"container/list"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/sandrolain/gocalc/pkg/types"
)

// hashKey computes the index digest of a source string.
var hashKey = xxhash.Sum64String

// entry is a cache entry stored in the doubly-linked list.
type entry struct {
	hash uint64
	key  string
	expr *types.Expression
}

// Cache is a thread-safe LRU (Least Recently Used) cache for parsed expressions.
// Once the capacity is reached, the least recently accessed entry is evicted.
//
// Safe for concurrent use by multiple goroutines.
type Cache struct {
	mu       sync.RWMutex
	capacity int
	ll       *list.List
	items    map[uint64]*list.Element
}

// New creates a new LRU cache with the given capacity.
// capacity must be > 0; if <= 0, a default of 256 is used.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = 256
	}
	return &Cache{
		capacity: capacity,
		ll:       list.New(),
		items:    make(map[uint64]*list.Element, capacity),
	}
}

// lookupLocked returns the element for key. Must be called with c.mu held.
func (c *Cache) lookupLocked(h uint64, key string) (*list.Element, bool) {
	el, ok := c.items[h]
	if !ok || el.Value.(*entry).key != key {
		return nil, false
	}
	return el, true
}

// Get retrieves an expression from the cache.
// Returns (expr, true) if found and moves the entry to front (MRU).
// Returns (nil, false) if not present.
func (c *Cache) Get(key string) (*types.Expression, bool) {
	h := hashKey(key)

	c.mu.RLock()
	el, ok := c.lookupLocked(h, key)
	// Already at the front: skip the write lock entirely.
	alreadyFront := ok && c.ll.Front() == el
	var expr *types.Expression
	if ok {
		expr = el.Value.(*entry).expr
	}
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if !alreadyFront {
		// Promote to front under write lock; re-check in case of concurrent eviction.
		c.mu.Lock()
		el, ok = c.lookupLocked(h, key)
		if ok {
			c.ll.MoveToFront(el)
			expr = el.Value.(*entry).expr
		}
		c.mu.Unlock()

		if !ok {
			return nil, false
		}
	}
	return expr, true
}

// Set inserts or replaces an expression in the cache.
// If at capacity, the least recently used entry is evicted first.
// A different key with the same digest replaces the existing entry.
func (c *Cache) Set(key string, expr *types.Expression) {
	h := hashKey(key)

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[h]; ok {
		e := el.Value.(*entry)
		e.key = key
		e.expr = expr
		c.ll.MoveToFront(el)
		return
	}

	if c.ll.Len() >= c.capacity {
		c.evictLocked()
	}

	el := c.ll.PushFront(&entry{hash: h, key: key, expr: expr})
	c.items[h] = el
}

// GetOrCompile retrieves the expression for key from cache, or calls compile()
// to create it, caches the result, and returns it.
// Errors are not cached.
func (c *Cache) GetOrCompile(key string, compile func() (*types.Expression, error)) (*types.Expression, error) {
	if expr, ok := c.Get(key); ok {
		return expr, nil
	}
	expr, err := compile()
	if err != nil {
		return nil, err
	}
	c.Set(key, expr)
	return expr, nil
}

// Len returns the number of entries currently in the cache.
func (c *Cache) Len() int {
	c.mu.RLock()
	n := len(c.items)
	c.mu.RUnlock()
	return n
}

// Capacity returns the maximum number of entries the cache can hold.
func (c *Cache) Capacity() int {
	return c.capacity
}

// Invalidate removes a single entry from the cache.
func (c *Cache) Invalidate(key string) {
	h := hashKey(key)

	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.lookupLocked(h, key); ok {
		c.ll.Remove(el)
		delete(c.items, h)
	}
}

// Clear removes all entries from the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ll.Init()
	c.items = make(map[uint64]*list.Element, c.capacity)
}

// evictLocked removes the least recently used entry.
// Must be called with c.mu held for writing.
func (c *Cache) evictLocked() {
	el := c.ll.Back()
	if el == nil {
		return
	}
	c.ll.Remove(el)
	delete(c.items, el.Value.(*entry).hash)
}
