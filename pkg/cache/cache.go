// Package cache implements a goroutine-safe, capacity-bounded TTL cache.
//
// Entries expire lazily: an expired entry is deleted the next time it is
// read, never by a background goroutine. When the cache is full and a new
// key arrives, the least recently inserted entry is evicted. Insertion-order
// eviction (not LRU-on-read) is a deliberate simplification for small,
// low-cardinality key spaces such as currency pairs.
package cache

import (
	"sync"
	"time"
)

// DefaultCapacity bounds the cache when no capacity is configured.
const DefaultCapacity = 200

type entry[V any] struct {
	value  V
	expiry time.Time
	seq    uint64
}

type queued struct {
	key string
	seq uint64
}

// Cache maps string keys to values with a per-insertion TTL and a maximum
// entry count. The zero value is not usable; use New.
type Cache[V any] struct {
	mu       sync.Mutex
	entries  map[string]entry[V]
	queue    []queued
	capacity int
	seq      uint64
	now      func() time.Time
}

// New creates a cache holding at most capacity entries. A capacity <= 0
// falls back to DefaultCapacity.
func New[V any](capacity int) *Cache[V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache[V]{
		entries:  make(map[string]entry[V], capacity),
		capacity: capacity,
		now:      time.Now,
	}
}

// Set inserts or replaces the entry for key with expiry now+ttl. If the
// cache is at capacity and key is new, the least recently inserted entry is
// evicted first.
func (c *Cache[V]) Set(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.capacity {
		c.evictOldest()
	}
	c.entries[key] = entry[V]{value: value, expiry: c.now().Add(ttl), seq: c.seq}
	// A replaced key leaves its old queue slot behind; evictOldest skips
	// slots whose seq no longer matches the live entry.
	c.queue = append(c.queue, queued{key: key, seq: c.seq})
	if len(c.queue) > 2*c.capacity {
		c.compact()
	}
}

// Get returns the value for key, or the zero value and false if the key is
// absent or expired. An expired entry is deleted as a side effect.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if c.now().After(e.expiry) {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Has reports whether key holds an unexpired entry, with the same lazy
// expiry side effect as Get.
func (c *Cache[V]) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Clear removes all entries unconditionally.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry[V], c.capacity)
	c.queue = nil
}

// Len returns the number of entries currently stored, counting entries that
// have expired but not yet been read.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// evictOldest removes the least recently inserted live entry. Queue slots
// made stale by replacement or expiry-deletion are discarded on the way.
// Caller must hold c.mu.
func (c *Cache[V]) evictOldest() {
	for len(c.queue) > 0 {
		head := c.queue[0]
		c.queue = c.queue[1:]
		if e, ok := c.entries[head.key]; ok && e.seq == head.seq {
			delete(c.entries, head.key)
			return
		}
	}
}

// compact drops stale queue slots in place, keeping the queue proportional
// to the entry count even when replacements and expiries outpace eviction.
// Caller must hold c.mu.
func (c *Cache[V]) compact() {
	live := c.queue[:0]
	for _, q := range c.queue {
		if e, ok := c.entries[q.key]; ok && e.seq == q.seq {
			live = append(live, q)
		}
	}
	c.queue = live
}
