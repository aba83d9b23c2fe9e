// Package idempotency implements the prior-result cache of spec.md §5:
// "A plan may carry idempotencyKey; on a repeat submission with the same
// key, the engine returns the cached prior result instead of re-executing."
// Grounded on github.com/hashicorp/golang-lru/v2 (a dependency carried by
// the AKJUS-bsc-erigon example repo's go.mod), wrapped with an explicit TTL
// since the plain LRU cache the library provides has no expiry of its own.
package idempotency

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/archimate-engine/batchmut/internal/engine"
)

// entry is one cached plan result, stamped with its insertion time so
// Get can evict on read past ttl without a background sweep.
type entry struct {
	result    engine.Result
	storedAt  time.Time
}

// Cache is a bounded, TTL-expiring map from idempotencyKey to a plan's
// prior Result (spec.md §5). Safe for concurrent use.
type Cache struct {
	mu  sync.Mutex
	lru *lru.Cache[string, entry]
	ttl time.Duration
	now func() time.Time
}

// New creates a Cache holding at most capacity entries, each valid for ttl
// after insertion.
func New(capacity int, ttl time.Duration) *Cache {
	inner, err := lru.New[string, entry](capacity)
	if err != nil {
		// lru.New only errors on capacity <= 0; a daemon misconfigured this
		// badly should fail loudly at startup rather than run cache-less.
		panic("idempotency: invalid cache capacity: " + err.Error())
	}
	return &Cache{lru: inner, ttl: ttl, now: time.Now}
}

// Get returns the cached Result for key, if present and not yet expired.
func (c *Cache) Get(key string) (engine.Result, bool) {
	if key == "" {
		return engine.Result{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.lru.Get(key)
	if !ok {
		return engine.Result{}, false
	}
	if c.now().Sub(e.storedAt) > c.ttl {
		c.lru.Remove(key)
		return engine.Result{}, false
	}
	return e.result, true
}

// Put records result under key, evicting the least-recently-used entry if
// the cache is at capacity.
func (c *Cache) Put(key string, result engine.Result) {
	if key == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Add(key, entry{result: result, storedAt: c.now()})
}

// EvictExpired drops every entry older than ttl. Intended to run as a
// maintenance.Job on a periodic schedule, since golang-lru's plain Cache
// only evicts on capacity pressure or explicit Remove, never on age alone.
func (c *Cache) EvictExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	evicted := 0
	for _, key := range c.lru.Keys() {
		e, ok := c.lru.Peek(key)
		if !ok {
			continue
		}
		if c.now().Sub(e.storedAt) > c.ttl {
			c.lru.Remove(key)
			evicted++
		}
	}
	return evicted
}

// Len reports the current number of cached entries, including any not yet
// swept past their ttl.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}
