// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package topology

import (
	"sync"
	"sync/atomic"
)

// GroupCache memoizes groupings per shape buffer so an unchanged buffer
// costs zero allocation on subsequent frames.
//
// Entries are keyed by (buffer handle, generation, count). The upstream
// materializer's contract is that unchanged field content reuses the same
// handle and generation frame-to-frame; when the arena recycles a handle it
// must call Evict, which is what replaces reachability-based cleanup in a
// garbage-collected runtime.
type GroupCache struct {
	mu      sync.RWMutex
	entries map[cacheKey][]Group

	// Statistics (atomic for zero-allocation reads)
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// cacheKey identifies one cached grouping.
type cacheKey struct {
	handle     Handle
	generation uint32
	count      int
}

// CacheStats contains cache statistics for monitoring.
type CacheStats struct {
	// Entries is the number of cached groupings.
	Entries int
	// Hits is the number of cache hits.
	Hits uint64
	// Misses is the number of cache misses.
	Misses uint64
	// Evictions is the number of entries evicted.
	Evictions uint64
}

// NewGroupCache creates an empty group cache.
func NewGroupCache() *GroupCache {
	return &GroupCache{entries: make(map[cacheKey][]Group)}
}

// GroupByTopology returns the grouping for a shape buffer, consulting the
// cache first. A hit reuses the previous grouping with no allocation; a
// miss computes, stores, and returns it.
func (c *GroupCache) GroupByTopology(buf *ShapeBuffer, count int) []Group {
	key := cacheKey{handle: buf.Handle, generation: buf.Generation, count: count}

	c.mu.RLock()
	groups, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		return groups
	}

	c.misses.Add(1)
	groups = GroupByTopology(buf.Refs, count)
	c.mu.Lock()
	c.entries[key] = groups
	c.mu.Unlock()
	return groups
}

// Evict drops every cached grouping keyed on the given handle, across all
// generations. The owning arena calls this when it recycles the handle.
func (c *GroupCache) Evict(handle Handle) {
	c.mu.Lock()
	for key := range c.entries {
		if key.handle == handle {
			delete(c.entries, key)
			c.evictions.Add(1)
		}
	}
	c.mu.Unlock()
}

// Stats returns a snapshot of the cache statistics.
func (c *GroupCache) Stats() CacheStats {
	c.mu.RLock()
	entries := len(c.entries)
	c.mu.RUnlock()
	return CacheStats{
		Entries:   entries,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}
