package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// DefaultMemoryEntries bounds a MemoryCache created with a non-positive size.
const DefaultMemoryEntries = 256

// MemoryCache is a bounded in-process cache that evicts the least recently
// used entry once full. It is safe for concurrent use.
type MemoryCache struct {
	mu      sync.Mutex
	max     int
	order   *list.List
	entries map[string]*list.Element
	now     func() time.Time
}

type memoryEntry struct {
	key       string
	data      []byte
	expiresAt time.Time
}

// NewMemoryCache creates a cache holding at most max entries.
func NewMemoryCache(max int) *MemoryCache {
	if max <= 0 {
		max = DefaultMemoryEntries
	}
	return &MemoryCache{
		max:     max,
		order:   list.New(),
		entries: make(map[string]*list.Element),
		now:     time.Now,
	}
}

// Get retrieves a value and marks it recently used.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	e := el.Value.(*memoryEntry)
	if !e.expiresAt.IsZero() && c.now().After(e.expiresAt) {
		c.remove(el)
		return nil, false, nil
	}
	c.order.MoveToFront(el)
	return e.data, true, nil
}

// Set stores a value, evicting the oldest entry when full.
func (c *MemoryCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := &memoryEntry{key: key, data: data}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}
	if el, ok := c.entries[key]; ok {
		el.Value = e
		c.order.MoveToFront(el)
		return nil
	}
	c.entries[key] = c.order.PushFront(e)
	for c.order.Len() > c.max {
		c.remove(c.order.Back())
	}
	return nil
}

// Delete removes key.
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[key]; ok {
		c.remove(el)
	}
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Close drops every entry.
func (c *MemoryCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	clear(c.entries)
	return nil
}

func (c *MemoryCache) remove(el *list.Element) {
	c.order.Remove(el)
	delete(c.entries, el.Value.(*memoryEntry).key)
}

var _ Cache = (*MemoryCache)(nil)
