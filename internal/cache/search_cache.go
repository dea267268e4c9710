package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	redisv9 "github.com/redis/go-redis/v9"
)

// SearchCache stores raw search-provider bodies keyed by engine and query.
type SearchCache interface {
	Get(ctx context.Context, key string) (json.RawMessage, bool, error)
	Set(ctx context.Context, key string, body json.RawMessage) error
}

// SearchKey builds the cache key for one engine and query.
func SearchKey(engine, query string) string {
	return fmt.Sprintf("search:%s:%s", engine, query)
}

type RedisSearchCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewRedisSearchCache(client *redisv9.Client, ttl time.Duration) *RedisSearchCache {
	return &RedisSearchCache{client: client, ttl: ttl}
}

func (c *RedisSearchCache) Get(ctx context.Context, key string) (json.RawMessage, bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get search result failed: %w", err)
	}
	return json.RawMessage(raw), true, nil
}

func (c *RedisSearchCache) Set(ctx context.Context, key string, body json.RawMessage) error {
	if err := c.client.Set(ctx, key, []byte(body), c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set search result failed: %w", err)
	}
	return nil
}

// MemorySearchCache keeps results in process memory.
type MemorySearchCache struct {
	store *gocache.Cache
}

func NewMemorySearchCache(ttl time.Duration) *MemorySearchCache {
	return &MemorySearchCache{store: gocache.New(ttl, 2*ttl)}
}

func (c *MemorySearchCache) Get(_ context.Context, key string) (json.RawMessage, bool, error) {
	v, ok := c.store.Get(key)
	if !ok {
		return nil, false, nil
	}
	body, ok := v.(json.RawMessage)
	if !ok {
		return nil, false, fmt.Errorf("unexpected cached value type %T", v)
	}
	return body, true, nil
}

func (c *MemorySearchCache) Set(_ context.Context, key string, body json.RawMessage) error {
	c.store.SetDefault(key, body)
	return nil
}

// New picks the Redis backend when a client is given and falls back to
// process memory. A non-positive ttl disables caching and returns nil.
func New(client *redisv9.Client, ttl time.Duration) SearchCache {
	if ttl <= 0 {
		return nil
	}
	if client != nil {
		return NewRedisSearchCache(client, ttl)
	}
	return NewMemorySearchCache(ttl)
}
