package application

import (
	"strings"
	"sync"
	"time"
)

// StatsCache stores recently computed dashboard statistics to avoid
// rescanning the request collection for identical viewer scopes while the
// collection remains unchanged. Successful lifecycle transitions invalidate
// the whole cache.
type StatsCache struct {
	mu         sync.RWMutex
	now        func() time.Time
	ttl        time.Duration
	maxEntries int
	entries    map[string]statsCacheEntry
}

type statsCacheEntry struct {
	stats     DashboardStats
	expiresAt time.Time
}

// NewStatsCache constructs a cache with the given TTL and entry bound.
// Non-positive arguments fall back to defaults.
func NewStatsCache(ttl time.Duration, maxEntries int, now func() time.Time) *StatsCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if maxEntries <= 0 {
		maxEntries = 128
	}
	if now == nil {
		now = time.Now
	}
	return &StatsCache{
		now:        now,
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[string]statsCacheEntry),
	}
}

// Get returns the cached stats for the key when present and unexpired.
func (c *StatsCache) Get(key string) (DashboardStats, bool) {
	if c == nil {
		return DashboardStats{}, false
	}
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return DashboardStats{}, false
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return DashboardStats{}, false
	}
	return entry.stats, true
}

// Store records the stats for the key.
func (c *StatsCache) Store(key string, stats DashboardStats) {
	if c == nil {
		return
	}
	expiry := c.now().Add(c.ttl)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.cleanupLocked()
	if len(c.entries) >= c.maxEntries {
		c.evictOneLocked()
	}
	c.entries[key] = statsCacheEntry{stats: stats, expiresAt: expiry}
}

// Invalidate drops every cached entry.
func (c *StatsCache) Invalidate() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.entries = make(map[string]statsCacheEntry)
	c.mu.Unlock()
}

func (c *StatsCache) cleanupLocked() {
	now := c.now()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}

func (c *StatsCache) evictOneLocked() {
	for key := range c.entries {
		delete(c.entries, key)
		return
	}
}

// buildStatsCacheKey derives a cache key from the viewer scope.
func buildStatsCacheKey(scope StatsScope) string {
	builder := strings.Builder{}
	builder.WriteString(string(scope.Kind))
	builder.WriteString("|")
	builder.WriteString(scope.RegNo)
	builder.WriteString("|")
	builder.WriteString(scope.Dept)
	return builder.String()
}
