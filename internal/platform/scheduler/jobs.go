// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package scheduler

import (
	"context"
	"log/slog"

	"github.com/taibuivan/navaadmin/internal/platform/ctxutil"
)

// Func turns a function into a named [Job].
type Func struct {
	JobName string
	Fn      func(context context.Context) error
}

// Name returns JobName.
func (job Func) Name() string                      { return job.JobName }
// Run calls Fn.
func (job Func) Run(context context.Context) error { return job.Fn(context) }

// OrphanSweeper is satisfied by storage.Janitor.
type OrphanSweeper interface {
	Sweep(context context.Context) (int, error)
}

// OrphanSweepJob retries removal of objects that could not be deleted earlier.
func OrphanSweepJob(sweeper OrphanSweeper) Job {
	return Func{
		JobName: "orphan_sweep",
		Fn: func(context context.Context) error {
			removed, err := sweeper.Sweep(context)
			if removed > 0 {
				ctxutil.GetLogger(context).Info("orphans_removed", slog.Int("count", removed))
			}
			return err
		},
	}
}

// Warmer is satisfied by dashboard.Service.
type Warmer interface {
	Warm(context context.Context) error
}

// DashboardWarmupJob recomputes the cached dashboard statistics.
func DashboardWarmupJob(warmer Warmer) Job {
	return Func{JobName: "dashboard_warmup", Fn: warmer.Warm}
}
