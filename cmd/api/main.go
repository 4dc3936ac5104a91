// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Nava admin HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool) and Redis.
//  4. Run database migrations when enabled.
//  5. Select the object storage provider.
//  6. Wire domain services and HTTP handlers.
//  7. Start the maintenance scheduler.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/navaadmin/internal/api"
	"github.com/taibuivan/navaadmin/internal/core/category"
	"github.com/taibuivan/navaadmin/internal/core/chapter"
	"github.com/taibuivan/navaadmin/internal/core/content"
	"github.com/taibuivan/navaadmin/internal/core/creator"
	"github.com/taibuivan/navaadmin/internal/core/review"
	"github.com/taibuivan/navaadmin/internal/dashboard"
	"github.com/taibuivan/navaadmin/internal/platform/config"
	"github.com/taibuivan/navaadmin/internal/platform/constants"
	"github.com/taibuivan/navaadmin/internal/platform/migration"
	pgstore "github.com/taibuivan/navaadmin/internal/platform/postgres"
	redisstore "github.com/taibuivan/navaadmin/internal/platform/redis"
	"github.com/taibuivan/navaadmin/internal/platform/scheduler"
	"github.com/taibuivan/navaadmin/internal/platform/sec"
	"github.com/taibuivan/navaadmin/internal/platform/storage"
	"github.com/taibuivan/navaadmin/internal/support/ticket"
	"github.com/taibuivan/navaadmin/internal/users/narrator"
	"github.com/taibuivan/navaadmin/internal/users/profile"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("storage_provider", cfg.StorageProvider),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL & Redis ─────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_failed", slog.Any("error", cerr))
		}
	}()

	// ── 4. Migrations ─────────────────────────────────────────────────────
	if cfg.RunMigrations {
		must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")
	}

	// ── 5. Object Storage ─────────────────────────────────────────────────
	store, err := newStore(startupCtx, cfg)
	must(log, err, "initialize object storage")
	janitor := storage.NewJanitor(store, rdb, log)

	buckets := storage.Buckets{
		Covers:        cfg.BucketCovers,
		Audio:         cfg.BucketAudio,
		Ebooks:        cfg.BucketEbooks,
		ProfileImages: cfg.BucketProfileImages,
	}

	// ── 6. Security ───────────────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.SupabaseJWTSecret, constants.SupabaseAudience)
	must(log, err, "initialize token verifier")

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	profileService := profile.NewService(
		profile.NewPostgresRepository(pool),
		profile.NewRedisAccessCache(rdb, constants.RoleCacheTTL),
		log,
	)
	dashboardService := dashboard.NewService(
		dashboard.NewPostgresRepository(pool),
		dashboard.NewRedisCache(rdb, cfg.DashboardCacheTTL),
	)
	chapterService := chapter.NewService(chapter.NewPostgresRepository(pool), store, janitor, chapter.Options{
		Bucket:       cfg.BucketAudio,
		MaxFiles:     cfg.BulkUploadMaxFiles,
		MaxFileBytes: cfg.UploadMaxBytes,
		SignedURLTTL: cfg.SignedURLTTL,
	})

	liveness, readiness := api.NewHealthHandlers(log,
		api.Check{Name: "postgres", Probe: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) }},
		api.Check{Name: "redis", Probe: func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }},
	)

	handlers := api.Handlers{
		Liveness:        liveness,
		Readiness:       readiness,
		Dashboard:       dashboard.NewHandler(dashboardService),
		Categories:      newCategoryHandler(pool, category.KindGeneral),
		MusicCategories: newCategoryHandler(pool, category.KindMusic),
		Creators:        creator.NewHandler(creator.NewService(creator.NewPostgresRepository(pool), store, janitor, cfg.BucketProfileImages)),
		Profiles:        profile.NewHandler(profileService),
		Content:         content.NewHandler(content.NewService(content.NewPostgresRepository(pool), store, janitor, buckets, cfg.SignedURLTTL)),
		Chapters:        chapter.NewHandler(chapterService),
		Tickets:         ticket.NewHandler(ticket.NewService(ticket.NewPostgresRepository(pool))),
		Reviews:         review.NewHandler(review.NewService(review.NewPostgresRepository(pool))),
		Narrators: narrator.NewHandler(narrator.NewService(
			narrator.NewPostgresRepository(pool), profileService, store, cfg.BucketNarratorSamples, cfg.SignedURLTTL,
		)),
	}

	// ── 8. Scheduler ──────────────────────────────────────────────────────
	jobs := scheduler.New(log.With(slog.String("system", "cron")))
	must(log, jobs.Register(cfg.OrphanSweepSchedule, scheduler.OrphanSweepJob(janitor)), "register orphan sweep")
	must(log, jobs.Register(fmt.Sprintf("@every %s", cfg.DashboardCacheTTL), scheduler.DashboardWarmupJob(dashboardService)), "register dashboard warmup")
	jobs.Start()

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	server := api.NewServer(rootCtx, cfg, log, api.Guards{
		Verifier: tokens,
		Keys:     sec.NewAPIKeyChecker(cfg.AdminAPIKeyHash),
		Roles:    profileService,
	}, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_failed", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting_down_server", slog.Duration("timeout", shutdownTimeout))

	stopCtx, stopCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stopCancel()
	jobs.Stop(stopCtx)

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

// newStore selects the object storage backend named by STORAGE_PROVIDER.
func newStore(context context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.StorageProvider {
	case config.StorageS3:
		return storage.NewS3(context, storage.S3Options{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			PublicBaseURL:   cfg.S3PublicBaseURL,
		})
	case config.StorageSupabase:
		return storage.NewSupabase(cfg.SupabaseURL, cfg.SupabaseServiceKey), nil
	}
	return nil, fmt.Errorf("unknown storage provider %q", cfg.StorageProvider)
}

func newCategoryHandler(pool pgstore.DB, kind category.Kind) *category.Handler {
	return category.NewHandler(category.NewService(category.NewPostgresRepository(pool, kind), kind))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
// Startup wiring only.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
