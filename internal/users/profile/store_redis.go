// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/navaadmin/internal/platform/constants"
)

// RedisAccessCache implements [AccessCache] with one JSON value per user.
type RedisAccessCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisAccessCache creates a cache whose entries live for ttl.
func NewRedisAccessCache(client *redis.Client, ttl time.Duration) *RedisAccessCache {
	return &RedisAccessCache{client: client, ttl: ttl}
}

func accessKey(userID string) string {
	return constants.RedisPrefixProfileRole + userID
}

// Get returns the cached access entry, or nil on a miss.
func (cache *RedisAccessCache) Get(context context.Context, userID string) (*Access, error) {
	raw, err := cache.client.Get(context, accessKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis_access_get_failed: %w", err)
	}

	access := &Access{}
	if err := json.Unmarshal(raw, access); err != nil {
		// A corrupt entry is treated as a miss and overwritten on the next Set
		return nil, nil
	}
	return access, nil
}

// Set caches access for the configured TTL.
func (cache *RedisAccessCache) Set(context context.Context, userID string, access *Access) error {
	raw, err := json.Marshal(access)
	if err != nil {
		return err
	}
	if err := cache.client.Set(context, accessKey(userID), raw, cache.ttl).Err(); err != nil {
		return fmt.Errorf("redis_access_set_failed: %w", err)
	}
	return nil
}

// Invalidate drops the cached access entry of userID.
func (cache *RedisAccessCache) Invalidate(context context.Context, userID string) error {
	if err := cache.client.Del(context, accessKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis_access_delete_failed: %w", err)
	}
	return nil
}
