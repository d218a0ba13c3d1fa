package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces cache keys.
const DefaultRedisPrefix = "weather-forecast-collection:"

// RedisKeyCache shares resolutions between processes. Entries never expire.
type RedisKeyCache struct {
	client *redis.Client
	prefix string
}

// NewRedisKeyCache connects to addr and verifies the connection.
func NewRedisKeyCache(addr, prefix string) (*RedisKeyCache, error) {
	if addr == "" {
		return nil, errors.New("redis address must not be empty")
	}
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &RedisKeyCache{client: client, prefix: prefix}, nil
}

func (c *RedisKeyCache) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := c.client.Get(ctx, c.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, true, nil
}

// Put uses SETNX so concurrent writers across processes keep a single value.
func (c *RedisKeyCache) Put(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if err := c.client.SetNX(ctx, c.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis setnx %s: %w", key, err)
	}
	return nil
}

func (c *RedisKeyCache) Close() error {
	return c.client.Close()
}
