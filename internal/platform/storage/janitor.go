// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storage

import (
	stdctx "context"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/navaadmin/internal/platform/constants"
)

// Janitor removes objects that are no longer referenced by any row.
//
// Removal is best-effort: a failure is logged and, when Redis is available,
// the object is queued in a set so the scheduled sweep can try again.
// Discarding the same object twice is harmless.
type Janitor struct {
	store  Store
	redis  *redis.Client
	logger *slog.Logger
}

// NewJanitor builds a janitor. redis may be nil, in which case failures are only logged.
func NewJanitor(store Store, redisClient *redis.Client, logger *slog.Logger) *Janitor {
	return &Janitor{store: store, redis: redisClient, logger: logger}
}

func orphanMember(bucket, objectPath string) string {
	return bucket + "|" + objectPath
}

// cleanupContext keeps the caller's values but not its deadline or
// cancellation, bounded by [constants.OrphanCleanupTimeout].
func cleanupContext(parent stdctx.Context) (stdctx.Context, stdctx.CancelFunc) {
	return stdctx.WithTimeout(stdctx.WithoutCancel(parent), constants.OrphanCleanupTimeout)
}

/*
Discard removes an object and never fails.

It runs even when the caller's context is already done: a request that timed
out after uploading must still remove or queue what it uploaded.

Parameters:
  - context: context.Context
  - bucket: string
  - objectPath: string (empty paths are ignored)
*/
func (janitor *Janitor) Discard(context stdctx.Context, bucket, objectPath string) {
	if objectPath == "" {
		return
	}

	context, cancel := cleanupContext(context)
	defer cancel()

	err := janitor.store.Remove(context, bucket, objectPath)
	if err == nil {
		return
	}

	janitor.logger.WarnContext(context, "orphan_remove_failed",
		slog.String("bucket", bucket),
		slog.String("path", objectPath),
		slog.Any("error", err),
	)

	if janitor.redis == nil {
		return
	}
	if queueErr := janitor.redis.SAdd(context, constants.RedisKeyStorageOrphans, orphanMember(bucket, objectPath)).Err(); queueErr != nil {
		janitor.logger.WarnContext(context, "orphan_enqueue_failed",
			slog.String("bucket", bucket),
			slog.String("path", objectPath),
			slog.Any("error", queueErr),
		)
	}
}

// DiscardAll removes several objects of one bucket with a single call,
// queueing all of them when the call fails. Like [Janitor.Discard] it ignores
// the caller's cancellation.
func (janitor *Janitor) DiscardAll(context stdctx.Context, bucket string, objectPaths ...string) {
	var paths []string
	for _, objectPath := range objectPaths {
		if objectPath != "" {
			paths = append(paths, objectPath)
		}
	}
	if len(paths) == 0 {
		return
	}

	context, cancel := cleanupContext(context)
	defer cancel()

	err := janitor.store.Remove(context, bucket, paths...)
	if err == nil {
		return
	}

	janitor.logger.WarnContext(context, "orphan_remove_failed",
		slog.String("bucket", bucket),
		slog.Int("count", len(paths)),
		slog.Any("error", err),
	)

	if janitor.redis == nil {
		return
	}
	members := make([]any, 0, len(paths))
	for _, objectPath := range paths {
		members = append(members, orphanMember(bucket, objectPath))
	}
	if queueErr := janitor.redis.SAdd(context, constants.RedisKeyStorageOrphans, members...).Err(); queueErr != nil {
		janitor.logger.WarnContext(context, "orphan_enqueue_failed",
			slog.String("bucket", bucket),
			slog.Any("error", queueErr),
		)
	}
}

/*
Sweep retries every queued orphan.

Returns:
  - int: Number of objects removed and dequeued
  - error: Redis failures only; storage failures leave the entry queued
*/
func (janitor *Janitor) Sweep(context stdctx.Context) (int, error) {
	if janitor.redis == nil {
		return 0, nil
	}

	members, err := janitor.redis.SMembers(context, constants.RedisKeyStorageOrphans).Result()
	if err != nil {
		return 0, err
	}

	// Group by bucket so each bucket costs one Remove call
	byBucket := make(map[string][]string)
	for _, member := range members {
		bucket, objectPath, ok := strings.Cut(member, "|")
		if !ok || objectPath == "" {
			janitor.redis.SRem(context, constants.RedisKeyStorageOrphans, member)
			continue
		}
		byBucket[bucket] = append(byBucket[bucket], objectPath)
	}

	removed := 0
	for bucket, objectPaths := range byBucket {
		if err := janitor.store.Remove(context, bucket, objectPaths...); err != nil {
			janitor.logger.WarnContext(context, "orphan_sweep_failed",
				slog.String("bucket", bucket),
				slog.Int("count", len(objectPaths)),
				slog.Any("error", err),
			)
			continue
		}

		queued := make([]any, 0, len(objectPaths))
		for _, objectPath := range objectPaths {
			queued = append(queued, orphanMember(bucket, objectPath))
		}
		if err := janitor.redis.SRem(context, constants.RedisKeyStorageOrphans, queued...).Err(); err != nil {
			return removed, err
		}
		removed += len(objectPaths)
	}

	return removed, nil
}
