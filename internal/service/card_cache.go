package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultCardCacheTTL = 5 * time.Minute
	cardCacheKeyPrefix  = "tapcard:bundle:"
)

// BundleCache stores loaded profile bundles keyed by profile id.
// A miss is reported as (nil, nil).
type BundleCache interface {
	GetBundle(ctx context.Context, profileID string) (*Bundle, error)
	SetBundle(ctx context.Context, bundle *Bundle) error
	InvalidateBundle(ctx context.Context, profileID string) error
}

// redisKV is the subset of the redis client the cache needs.
type redisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisBundleCache keeps JSON encoded bundles in redis with a fixed TTL.
type RedisBundleCache struct {
	client redisKV
	ttl    time.Duration
}

// NewRedisBundleCache wires the cache to a redis client; a non-positive ttl
// falls back to five minutes.
func NewRedisBundleCache(client redisKV, ttl time.Duration) *RedisBundleCache {
	if ttl <= 0 {
		ttl = defaultCardCacheTTL
	}
	return &RedisBundleCache{client: client, ttl: ttl}
}

func cardCacheKey(profileID string) string {
	return cardCacheKeyPrefix + profileID
}

// GetBundle returns the cached bundle or nil on a miss.
func (c *RedisBundleCache) GetBundle(ctx context.Context, profileID string) (*Bundle, error) {
	raw, err := c.client.Get(ctx, cardCacheKey(profileID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cached bundle %s: %w", profileID, err)
	}

	var bundle Bundle
	if err := json.Unmarshal(raw, &bundle); err != nil {
		return nil, fmt.Errorf("decode cached bundle %s: %w", profileID, err)
	}
	return &bundle, nil
}

// SetBundle stores the bundle under its profile id.
func (c *RedisBundleCache) SetBundle(ctx context.Context, bundle *Bundle) error {
	if bundle == nil {
		return nil
	}
	payload, err := json.Marshal(bundle)
	if err != nil {
		return fmt.Errorf("encode bundle %s: %w", bundle.Profile.ID, err)
	}
	if err := c.client.Set(ctx, cardCacheKey(bundle.Profile.ID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache bundle %s: %w", bundle.Profile.ID, err)
	}
	return nil
}

// InvalidateBundle drops the cached bundle for a profile.
func (c *RedisBundleCache) InvalidateBundle(ctx context.Context, profileID string) error {
	if err := c.client.Del(ctx, cardCacheKey(profileID)).Err(); err != nil {
		return fmt.Errorf("invalidate bundle %s: %w", profileID, err)
	}
	return nil
}
