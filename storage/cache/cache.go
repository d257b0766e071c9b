// Package cache is an in-memory result cache fronting the backend reads,
// keyed by (query name, scope parameters). Entries are fresh for a bounded
// window and evicted after a longer window of disuse.
package cache

import (
	"strings"
	"sync"
	"time"
)

type entry struct {
	value    interface{}
	storedAt time.Time
	readAt   time.Time
}

type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	ttl     time.Duration
	idle    time.Duration

	nowFunc func() time.Time // mockable
}

func New(ttl, idle time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]*entry),
		ttl:     ttl,
		idle:    idle,
		nowFunc: time.Now,
	}
}

// Get returns the cached value when still within the freshness window.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	now := c.nowFunc()
	if now.Sub(e.storedAt) > c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	e.readAt = now
	return e.value, true
}

func (c *Cache) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.nowFunc()
	c.entries[key] = &entry{value: value, storedAt: now, readAt: now}
	c.sweep(now)
}

// Invalidate drops the given keys. Mutations that can change the underlying
// data must call this in the same logical operation as the write.
func (c *Cache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
	}
}

// InvalidatePrefix drops every key starting with prefix.
func (c *Cache) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
}

// sweep drops entries not read within the idle window. Runs opportunistically
// on writes; no background goroutine to manage.
func (c *Cache) sweep(now time.Time) {
	for k, e := range c.entries {
		if now.Sub(e.readAt) > c.idle {
			delete(c.entries, k)
		}
	}
}
