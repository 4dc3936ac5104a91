// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package scheduler_test

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/navaadmin/internal/platform/scheduler"
)

type fakeSweeper struct {
	calls atomic.Int32
}

func (sweeper *fakeSweeper) Sweep(context.Context) (int, error) {
	sweeper.calls.Add(1)
	return 2, nil
}

func newScheduler() *scheduler.Scheduler {
	return scheduler.New(slog.New(slog.DiscardHandler))
}

func TestRegister_InvalidSpec(t *testing.T) {
	err := newScheduler().Register("not a schedule", scheduler.OrphanSweepJob(&fakeSweeper{}))
	assert.Error(t, err)
}

func TestRunNow_RecoversPanic(t *testing.T) {
	job := scheduler.Func{JobName: "explodes", Fn: func(context.Context) error { panic("boom") }}

	assert.NotPanics(t, func() { newScheduler().RunNow(job) })
}

func TestRunNow_Error(t *testing.T) {
	var ran bool
	job := scheduler.Func{JobName: "fails", Fn: func(context.Context) error {
		ran = true
		return errors.New("nope")
	}}

	newScheduler().RunNow(job)
	assert.True(t, ran)
}

func TestScheduledRun(t *testing.T) {
	sweeper := &fakeSweeper{}
	runner := newScheduler()
	require.NoError(t, runner.Register("@every 1s", scheduler.OrphanSweepJob(sweeper)))

	runner.Start()
	assert.Eventually(t, func() bool { return sweeper.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	runner.Stop(ctx)
}

type fakeWarmer struct{ warmed bool }

func (warmer *fakeWarmer) Warm(context.Context) error {
	warmer.warmed = true
	return nil
}

func TestDashboardWarmupJob(t *testing.T) {
	warmer := &fakeWarmer{}
	job := scheduler.DashboardWarmupJob(warmer)

	assert.Equal(t, "dashboard_warmup", job.Name())
	require.NoError(t, job.Run(context.Background()))
	assert.True(t, warmer.warmed)
}
