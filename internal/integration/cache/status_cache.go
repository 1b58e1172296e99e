package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/epiwatch/backend/internal/application/adapter"
	"github.com/epiwatch/backend/internal/domain/entity"
)

const statusKeyPrefix = "timeline:status:"

type redisStatusCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStatusCache creates a status cache shared by every API instance.
func NewRedisStatusCache(client *redis.Client, ttl time.Duration) adapter.StatusCache {
	return &redisStatusCache{client: client, ttl: ttl}
}

func (c *redisStatusCache) GetMany(ctx context.Context, keys []string) (map[string]entity.BucketStatus, error) {
	found := make(map[string]entity.BucketStatus, len(keys))
	if len(keys) == 0 {
		return found, nil
	}

	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = statusKeyPrefix + key
	}

	values, err := c.client.MGet(ctx, prefixed...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read cached statuses: %w", err)
	}

	for i, value := range values {
		if s, ok := value.(string); ok {
			found[keys[i]] = entity.BucketStatus(s)
		}
	}
	return found, nil
}

func (c *redisStatusCache) SetMany(ctx context.Context, statuses map[string]entity.BucketStatus) error {
	if len(statuses) == 0 {
		return nil
	}

	_, err := c.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for key, status := range statuses {
			pipe.Set(ctx, statusKeyPrefix+key, string(status), c.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to cache statuses: %w", err)
	}
	return nil
}

// MemoryStatusCache keeps classified statuses in process. Entries are never
// evicted individually; the whole map is dropped once it reaches maxEntries.
type MemoryStatusCache struct {
	mu         sync.RWMutex
	entries    map[string]entity.BucketStatus
	maxEntries int
}

// NewMemoryStatusCache creates an in-process status cache.
func NewMemoryStatusCache(maxEntries int) *MemoryStatusCache {
	if maxEntries <= 0 {
		maxEntries = 10000
	}
	return &MemoryStatusCache{
		entries:    make(map[string]entity.BucketStatus),
		maxEntries: maxEntries,
	}
}

// GetMany returns the statuses present for keys.
func (c *MemoryStatusCache) GetMany(_ context.Context, keys []string) (map[string]entity.BucketStatus, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	found := make(map[string]entity.BucketStatus, len(keys))
	for _, key := range keys {
		if status, ok := c.entries[key]; ok {
			found[key] = status
		}
	}
	return found, nil
}

// SetMany stores statuses.
func (c *MemoryStatusCache) SetMany(_ context.Context, statuses map[string]entity.BucketStatus) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries)+len(statuses) > c.maxEntries {
		c.entries = make(map[string]entity.BucketStatus, len(statuses))
	}
	for key, status := range statuses {
		c.entries[key] = status
	}
	return nil
}

// Len returns the number of cached entries.
func (c *MemoryStatusCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
