package cache

import (
	"container/list"
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryCache is an LRU cache of snapshots with a per-entry TTL.
type MemoryCache struct {
	capacity int
	ttl      time.Duration
	cache    map[string]*list.Element
	lru      *list.List
	mu       sync.Mutex
	now      func() time.Time
}

type cacheEntry struct {
	key       string
	value     *Snapshot
	expiresAt time.Time
}

// NewMemoryCache creates a new cache with the given capacity and TTL.
func NewMemoryCache(capacity int, ttl time.Duration) *MemoryCache {
	if capacity <= 0 {
		capacity = DefaultConfig().Capacity
	}
	return &MemoryCache{
		capacity: capacity,
		ttl:      ttl,
		cache:    make(map[string]*list.Element),
		lru:      list.New(),
		now:      time.Now,
	}
}

// Get returns the snapshot for id if present and not expired.
func (c *MemoryCache) Get(_ context.Context, id string) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.cache[id]
	if !ok {
		return nil, fmt.Errorf("search %s: %w", id, ErrMiss)
	}
	entry := elem.Value.(*cacheEntry)
	if c.ttl > 0 && c.now().After(entry.expiresAt) {
		c.lru.Remove(elem)
		delete(c.cache, id)
		return nil, fmt.Errorf("search %s: %w", id, ErrMiss)
	}
	c.lru.MoveToFront(elem)
	return entry.value, nil
}

// Put stores s, evicting the least recently used entry if at capacity.
func (c *MemoryCache) Put(_ context.Context, s *Snapshot) error {
	if s == nil || s.ID == "" {
		return fmt.Errorf("snapshot without id")
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	expires := c.now().Add(c.ttl)
	if elem, ok := c.cache[s.ID]; ok {
		c.lru.MoveToFront(elem)
		entry := elem.Value.(*cacheEntry)
		entry.value = s
		entry.expiresAt = expires
		return nil
	}

	entry := &cacheEntry{key: s.ID, value: s, expiresAt: expires}
	elem := c.lru.PushFront(entry)
	c.cache[s.ID] = elem

	if c.lru.Len() > c.capacity {
		oldest := c.lru.Back()
		if oldest != nil {
			c.lru.Remove(oldest)
			delete(c.cache, oldest.Value.(*cacheEntry).key)
		}
	}
	return nil
}

// Delete removes id. Deleting an unknown id is not an error.
func (c *MemoryCache) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.cache[id]; ok {
		c.lru.Remove(elem)
		delete(c.cache, id)
	}
	return nil
}

// Len returns the number of entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Close is a no-op.
func (c *MemoryCache) Close() error {
	return nil
}

var _ ResultCache = (*MemoryCache)(nil)
