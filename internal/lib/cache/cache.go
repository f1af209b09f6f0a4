// Package cache stores serialized API responses in Redis.
//
// The cache is optional. When no Redis address is configured services get
// a NopCache, which never hits.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Keys shared by readers and invalidators.
const (
	RestaurantListKey = "restaurants:list"
	PizzaListKey      = "pizzas:list"
)

func RestaurantKey(id int64) string {
	return fmt.Sprintf("restaurants:%d", id)
}

// Cache stores JSON values under generations. Invalidate moves a key to a
// new generation, and a value written under an older one is never read
// again. A reader that loaded from the database before a concurrent write
// committed therefore cannot put its stale result back in front of later
// readers.
type Cache interface {
	// GetJSON decodes the value stored at key into dst. It reports false on
	// a miss, along with the generation a refill must be written under.
	GetJSON(ctx context.Context, key string, dst any) (gen int64, hit bool, err error)
	SetJSON(ctx context.Context, key string, gen int64, value any) error
	Invalidate(ctx context.Context, keys ...string) error
}

// Client is the subset of *redis.Client the cache needs.
type Client interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

// DefaultTTL applies when the configured TTL is zero.
const DefaultTTL = 5 * time.Minute

// GenerationKey holds the current generation of key. It has no expiry.
func GenerationKey(key string) string {
	return "gen:" + key
}

// ValueKey is where the value of key is stored for generation gen.
func ValueKey(key string, gen int64) string {
	return fmt.Sprintf("%s#%d", key, gen)
}

type RedisCache struct {
	client Client
	ttl    time.Duration
}

var _ Cache = (*RedisCache)(nil)

func NewRedisCache(client Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) generation(ctx context.Context, key string) (int64, error) {
	gen, err := c.client.Get(ctx, GenerationKey(key)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("cache generation %s: %w", key, err)
	}
	return gen, nil
}

func (c *RedisCache) GetJSON(ctx context.Context, key string, dst any) (int64, bool, error) {
	gen, err := c.generation(ctx, key)
	if err != nil {
		return 0, false, err
	}

	raw, err := c.client.Get(ctx, ValueKey(key, gen)).Bytes()
	if errors.Is(err, redis.Nil) {
		return gen, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return 0, false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return gen, true, nil
}

func (c *RedisCache) SetJSON(ctx context.Context, key string, gen int64, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	if err := c.client.Set(ctx, ValueKey(key, gen), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// Invalidate bumps the generation of every key and drops the value of the
// generation it replaced.
func (c *RedisCache) Invalidate(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		gen, err := c.client.Incr(ctx, GenerationKey(key)).Result()
		if err != nil {
			return fmt.Errorf("cache invalidate %s: %w", key, err)
		}
		if err := c.client.Del(ctx, ValueKey(key, gen-1)).Err(); err != nil {
			return fmt.Errorf("cache invalidate %s: %w", key, err)
		}
	}
	return nil
}

// NopCache is used when Redis is not configured.
type NopCache struct{}

var _ Cache = NopCache{}

func (NopCache) GetJSON(context.Context, string, any) (int64, bool, error) { return 0, false, nil }
func (NopCache) SetJSON(context.Context, string, int64, any) error         { return nil }
func (NopCache) Invalidate(context.Context, ...string) error               { return nil }
