package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"consultcoach/internal/model"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// memorySessionCache keeps encoded sessions in process memory. Used when no
// Redis address is configured and by the CLI.
type memorySessionCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemorySessionCache creates an in-process store; ttl <= 0 never expires.
func NewMemorySessionCache(ttl time.Duration) SessionCache {
	return &memorySessionCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *memorySessionCache) Set(ctx context.Context, session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	entry := memoryEntry{data: data}
	if c.ttl > 0 {
		entry.expiresAt = c.now().Add(c.ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[session.ID] = entry
	c.evictExpiredLocked()
	return nil
}

func (c *memorySessionCache) Get(ctx context.Context, id string) (*model.Session, error) {
	c.mu.RLock()
	entry, ok := c.entries[id]
	c.mu.RUnlock()
	if !ok || c.expired(entry) {
		return nil, ErrNotFound
	}

	var session model.Session
	if err := json.Unmarshal(entry.data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *memorySessionCache) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
	return nil
}

func (c *memorySessionCache) expired(e memoryEntry) bool {
	return !e.expiresAt.IsZero() && c.now().After(e.expiresAt)
}

func (c *memorySessionCache) evictExpiredLocked() {
	for id, e := range c.entries {
		if c.expired(e) {
			delete(c.entries, id)
		}
	}
}
