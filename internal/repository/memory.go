package repository

import (
	"context"
	"sync"
	"time"

	"shareit/internal/models"
)

// MemoryCache is the in-process fallback cache.
type MemoryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryEntry
}

type memoryEntry struct {
	items   []models.Item
	expires time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
	}
}

func (c *MemoryCache) GetItems(_ context.Context, key string) ([]models.Item, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expires) {
		return nil, false, nil
	}
	return entry.items, true, nil
}

func (c *MemoryCache) SetItems(_ context.Context, key string, items []models.Item) error {
	c.mu.Lock()
	c.entries[key] = memoryEntry{items: items, expires: time.Now().Add(c.ttl)}
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()
	return nil
}
