// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dashboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/navaadmin/internal/platform/ctxutil"
)

// Service serves dashboard statistics from the cache, collecting them on a miss.
type Service struct {
	repo  Repository
	cache Cache
	now   func() time.Time
}

// NewService constructs a new [Service] over repo and cache.
func NewService(repo Repository, cache Cache) *Service {
	return &Service{repo: repo, cache: cache, now: time.Now}
}

/*
Stats returns the dashboard counters.

A cache failure never fails the request: the statistics are recomputed and
the error is logged.

Parameters:
  - refresh: bool (skip the cached copy)
*/
func (service *Service) Stats(context context.Context, refresh bool) (*Stats, error) {
	logger := ctxutil.GetLogger(context)

	if !refresh {
		cached, err := service.cache.Get(context)
		if err != nil {
			logger.Warn("dashboard_cache_read_failed", slog.Any("error", err))
		}
		if cached != nil {
			return cached, nil
		}
	}

	stats, err := service.compute(context)
	if err != nil {
		return nil, err
	}

	if err := service.cache.Set(context, stats); err != nil {
		logger.Warn("dashboard_cache_write_failed", slog.Any("error", err))
	}
	return stats, nil
}

// Warm recomputes the statistics and stores them, for the warmup job.
func (service *Service) Warm(context context.Context) error {
	stats, err := service.compute(context)
	if err != nil {
		return err
	}
	return service.cache.Set(context, stats)
}

func (service *Service) compute(context context.Context) (*Stats, error) {
	since := service.now().Add(-RevenueWindow)
	return service.repo.Collect(context, since)
}
