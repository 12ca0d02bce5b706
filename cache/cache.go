package cache

import (
	"strings"
	"sync"
	"time"
)

type entry struct {
	value      interface{}
	expiration int64
}

// Cache is a small in-memory TTL cache used in front of the catalog
// collection. Expired entries are swept by a background goroutine.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
}

// New returns a running cache with the given default TTL.
func New(defaultTTL time.Duration) *Cache {
	c := &Cache{
		entries: make(map[string]entry),
		ttl:     defaultTTL,
	}
	go c.sweep()
	return c
}

// Set stores a value under key. An optional TTL overrides the default.
func (c *Cache) Set(key string, value interface{}, ttl ...time.Duration) {
	duration := c.ttl
	if len(ttl) > 0 {
		duration = ttl[0]
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{
		value:      value,
		expiration: time.Now().Add(duration).UnixNano(),
	}
}

// Get returns the value for key, or false when absent or expired.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, found := c.entries[key]
	if !found || time.Now().UnixNano() > e.expiration {
		return nil, false
	}
	return e.value, true
}

// Delete removes a single key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// DeleteByPrefix removes every key starting with prefix. Used to
// invalidate all catalog listings after a mutation.
func (c *Cache) DeleteByPrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
}

// Len returns the number of entries, including any not yet swept.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) sweep() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now().UnixNano()
		c.mu.Lock()
		for key, e := range c.entries {
			if now > e.expiration {
				delete(c.entries, key)
			}
		}
		c.mu.Unlock()
	}
}
