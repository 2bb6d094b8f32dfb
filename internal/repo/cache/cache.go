// Package cache stores fetched product pages for a short time so repeated list
// commands do not hit the retailer on every call.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type PageCache interface {
	// Get reports false when key is absent or expired.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

type nopCache struct{}

// NewNopCache returns a cache that never stores anything.
func NewNopCache() PageCache {
	return nopCache{}
}

func (nopCache) Get(context.Context, string) (string, bool, error) {
	return "", false, nil
}

func (nopCache) Set(context.Context, string, string) error {
	return nil
}

const keyPrefix = "price-bot:page:"

type redisCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisCache(client redis.UniversalClient, ttl time.Duration) PageCache {
	return &redisCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *redisCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	return val, true, nil
}

func (c *redisCache) Set(ctx context.Context, key, value string) error {
	if err := c.client.Set(ctx, keyPrefix+key, value, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
