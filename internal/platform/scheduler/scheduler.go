// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package scheduler runs periodic maintenance jobs inside the API process.

Jobs are registered with a cron expression (robfig/cron). Every run is wrapped
so that it:

  - gets its own logger with job_name and execution_id,
  - cannot crash the process when it panics,
  - never overlaps with a still-running previous run of the same job.
*/
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/taibuivan/navaadmin/internal/platform/ctxutil"
	"github.com/taibuivan/navaadmin/pkg/uuidv7"
)

// Job is a unit of periodic work.
type Job interface {
	Name() string
	Run(context context.Context) error
}

// Scheduler owns the cron runner and the context handed to jobs.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a stopped scheduler.
func New(logger *slog.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.SkipIfStillRunning(cron.DiscardLogger),
			recoveryWrapper(logger),
		)),
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Register schedules job on spec ("@every 15m", "0 3 * * *").
func (scheduler *Scheduler) Register(spec string, job Job) error {
	if _, err := scheduler.cron.AddJob(spec, scheduler.wrap(job)); err != nil {
		return fmt.Errorf("scheduler: register %s: %w", job.Name(), err)
	}
	scheduler.logger.Info("job_registered", slog.String("job_name", job.Name()), slog.String("schedule", spec))
	return nil
}

// Start begins running jobs in the background.
func (scheduler *Scheduler) Start() {
	scheduler.cron.Start()
}

// Stop cancels running jobs' context and waits for them, bounded by context.
func (scheduler *Scheduler) Stop(context context.Context) {
	scheduler.cancel()
	done := scheduler.cron.Stop()

	select {
	case <-done.Done():
	case <-context.Done():
		scheduler.logger.Warn("scheduler_stop_timeout")
	}
}

// RunNow executes job once, synchronously, with the same logging as scheduled runs.
func (scheduler *Scheduler) RunNow(job Job) {
	recoveryWrapper(scheduler.logger)(scheduler.wrap(job)).Run()
}

// # Wrappers

type namedJob struct {
	name string
	run  func()
}

func (job namedJob) Name() string { return job.name }
func (job namedJob) Run()         { job.run() }

// wrap adapts a [Job] to cron.Job and logs each execution.
func (scheduler *Scheduler) wrap(job Job) cron.Job {
	return namedJob{
		name: job.Name(),
		run: func() {
			jobLogger := scheduler.logger.With(
				slog.String("job_name", job.Name()),
				slog.String("execution_id", uuidv7.New()),
			)
			ctx := ctxutil.WithLogger(scheduler.ctx, jobLogger)

			startTime := time.Now()
			jobLogger.Debug("job_started")

			if err := job.Run(ctx); err != nil {
				jobLogger.Error("job_failed", slog.Any("error", err), slog.Duration("duration", time.Since(startTime)))
				return
			}
			jobLogger.Info("job_finished", slog.Duration("duration", time.Since(startTime)))
		},
	}
}

func recoveryWrapper(logger *slog.Logger) cron.JobWrapper {
	return func(inner cron.Job) cron.Job {
		return cron.FuncJob(func() {
			defer func() {
				if recovered := recover(); recovered != nil {
					name := "unknown"
					if named, ok := inner.(interface{ Name() string }); ok {
						name = named.Name()
					}
					logger.Error("job_panicked",
						slog.String("job_name", name),
						slog.Any("panic", recovered),
						slog.String("stack_trace", string(debug.Stack())),
					)
				}
			}()

			inner.Run()
		})
	}
}
