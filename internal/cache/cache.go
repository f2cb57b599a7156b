// Package cache holds recently computed trend results keyed by canonical
// request parameters. It is strictly a performance layer: with a zero TTL
// every lookup misses and the pipeline behaves identically, just slower.
package cache

import (
	"sync"
	"time"

	"github.com/minsuoh/krxpulse/internal/domain/models"
)

type entry struct {
	result   models.TrendResult
	cachedAt time.Time
	expires  time.Time
}

// ResultCache is an in-memory TTL cache with a size cap. Expired entries
// are dropped lazily on read and swept periodically in the background.
type ResultCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	maxSize int
	stop    chan struct{}
}

// New builds a ResultCache. A non-positive ttl disables caching entirely:
// Get always misses and Set is a no-op.
func New(ttl time.Duration, maxSize int) *ResultCache {
	c := &ResultCache{
		entries: make(map[string]entry),
		ttl:     ttl,
		maxSize: maxSize,
		stop:    make(chan struct{}),
	}
	if ttl > 0 {
		go c.sweep()
	}
	return c
}

// Get returns the cached result for key if present and not expired.
func (c *ResultCache) Get(key string) (models.TrendResult, bool) {
	c.mu.RLock()
	e, exists := c.entries[key]
	c.mu.RUnlock()
	if !exists {
		return models.TrendResult{}, false
	}
	if time.Now().After(e.expires) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return models.TrendResult{}, false
	}
	return e.result, true
}

// Set stores a result under key, evicting the oldest entry when full.
func (c *ResultCache) Set(key string, result models.TrendResult) {
	if c.ttl <= 0 || c.maxSize <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxSize {
		c.evictOldest()
	}
	now := time.Now()
	c.entries[key] = entry{result: result, cachedAt: now, expires: now.Add(c.ttl)}
}

// Len reports the number of live entries. Expired-but-unswept entries
// count until touched.
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close stops the background sweeper.
func (c *ResultCache) Close() {
	close(c.stop)
}

// evictOldest removes the least recently stored entry. Callers hold c.mu.
func (c *ResultCache) evictOldest() {
	var oldestKey string
	var oldestAt time.Time
	for key, e := range c.entries {
		if oldestKey == "" || e.cachedAt.Before(oldestAt) {
			oldestKey = key
			oldestAt = e.cachedAt
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

func (c *ResultCache) sweep() {
	interval := c.ttl
	if interval > time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			for key, e := range c.entries {
				if now.After(e.expires) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		}
	}
}
