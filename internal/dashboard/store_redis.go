// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/navaadmin/internal/platform/constants"
)

// RedisCache implements [Cache] as a single JSON value.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache constructs a [RedisCache] whose entries expire after ttl.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// Get returns the cached statistics, or nil on a miss.
func (cache *RedisCache) Get(context context.Context) (*Stats, error) {
	raw, err := cache.client.Get(context, constants.RedisKeyDashboardStats).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis_dashboard_get_failed: %w", err)
	}

	stats := &Stats{}
	if err := json.Unmarshal(raw, stats); err != nil {
		return nil, nil
	}
	return stats, nil
}

// Set stores stats as JSON.
func (cache *RedisCache) Set(context context.Context, stats *Stats) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	if err := cache.client.Set(context, constants.RedisKeyDashboardStats, raw, cache.ttl).Err(); err != nil {
		return fmt.Errorf("redis_dashboard_set_failed: %w", err)
	}
	return nil
}
