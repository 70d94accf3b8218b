package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionCache stores the serialized UI state of browser sessions.
// Get returns (nil, nil) for an unknown or expired session.
type SessionCache interface {
	Get(ctx context.Context, id string) ([]byte, error)
	Set(ctx context.Context, id string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

type redisSessionCache struct {
	client *RedisClient
}

func NewSessionCache(redisClient *RedisClient) SessionCache {
	return &redisSessionCache{client: redisClient}
}

func (c *redisSessionCache) key(id string) string {
	return c.client.key("session", id)
}

func (c *redisSessionCache) Get(ctx context.Context, id string) ([]byte, error) {
	data, err := c.client.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func (c *redisSessionCache) Set(ctx context.Context, id string, data []byte, ttl time.Duration) error {
	return c.client.client.Set(ctx, c.key(id), data, ttl).Err()
}

func (c *redisSessionCache) Delete(ctx context.Context, id string) error {
	return c.client.client.Del(ctx, c.key(id)).Err()
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemorySessionCache keeps sessions in process. Expired entries are dropped
// lazily on read.
type MemorySessionCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemorySessionCache() *MemorySessionCache {
	return &MemorySessionCache{
		entries: map[string]memoryEntry{},
		now:     time.Now,
	}
}

func (c *MemorySessionCache) Get(ctx context.Context, id string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[id]
	if !ok {
		return nil, nil
	}
	if !e.expiresAt.IsZero() && !c.now().Before(e.expiresAt) {
		delete(c.entries, id)
		return nil, nil
	}
	return append([]byte(nil), e.data...), nil
}

func (c *MemorySessionCache) Set(ctx context.Context, id string, data []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := memoryEntry{data: append([]byte(nil), data...)}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}
	c.entries[id] = e
	return nil
}

func (c *MemorySessionCache) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, id)
	return nil
}
