package ratelimiter

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisCache struct {
	client *redis.Client
}

// NewRedisCache backs the limiter with redis so buckets are shared across
// instances. The client is owned by the caller; Close is a no-op.
func NewRedisCache(client *redis.Client) GetterSetter {
	return &redisCache{client: client}
}

func (c *redisCache) Get(key string) (int, error) {
	value, err := c.client.Get(context.Background(), key).Int()
	if errors.Is(err, redis.Nil) {
		return 0, ErrCacheMiss
	}
	if err != nil {
		return 0, err
	}
	return value, nil
}

func (c *redisCache) Set(key string, value int) error {
	return c.SetWithExpiration(key, value, 0)
}

func (c *redisCache) SetWithExpiration(key string, value int, expiration time.Duration) error {
	return c.client.Set(context.Background(), key, value, expiration).Err()
}

func (c *redisCache) Close() error {
	return nil
}
