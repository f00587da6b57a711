package cache

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores entries in Redis so that several server replicas share
// rendered artifacts.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to the server at url, e.g.
// "redis://localhost:6379/0". The connection is established lazily.
func NewRedisCache(url string) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &RedisCache{client: redis.NewClient(opts)}, nil
}

// NewRedisCacheFromClient wraps an existing client.
func NewRedisCacheFromClient(c *redis.Client) *RedisCache {
	return &RedisCache{client: c}
}

// Ping checks connectivity.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Get retrieves a value. Redis expires entries itself.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores a value. A zero ttl keeps the key until evicted.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, data, ttl).Err()
}

// Delete removes key.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// Close closes the client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

var _ Cache = (*RedisCache)(nil)
