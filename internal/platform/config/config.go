// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Once loaded, configuration is read-only and passed to components through
their constructors.
*/
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage providers accepted by STORAGE_PROVIDER.
const (
	StorageSupabase = "supabase"
	StorageS3       = "s3"
)

// # Configuration Schema

// Config holds all runtime configuration for the admin API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (Supabase Postgres)
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// The platform schema is owned by Supabase; migrations only run for local stacks.
	RunMigrations bool   `env:"RUN_MIGRATIONS" envDefault:"false"`
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required,notEmpty"`

	// Supabase project
	SupabaseURL        string `env:"SUPABASE_URL"`
	SupabaseServiceKey string `env:"SUPABASE_SERVICE_KEY"`
	SupabaseJWTSecret  string `env:"SUPABASE_JWT_SECRET,required,notEmpty"`

	// Object Storage
	StorageProvider string `env:"STORAGE_PROVIDER" envDefault:"supabase"`

	// S3-compatible storage (used when STORAGE_PROVIDER=s3)
	S3Bucket          string `env:"S3_BUCKET"`
	S3Region          string `env:"S3_REGION"   envDefault:"auto"`
	S3Endpoint        string `env:"S3_ENDPOINT"`
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
	S3PublicBaseURL   string `env:"S3_PUBLIC_BASE_URL"`

	// Bucket names
	BucketCovers          string `env:"BUCKET_COVERS"           envDefault:"audiobook-covers"`
	BucketAudio           string `env:"BUCKET_AUDIO"            envDefault:"audiobook-audio"`
	BucketEbooks          string `env:"BUCKET_EBOOKS"           envDefault:"ebook-files"`
	BucketProfileImages   string `env:"BUCKET_PROFILE_IMAGES"   envDefault:"profile-images"`
	BucketNarratorSamples string `env:"BUCKET_NARRATOR_SAMPLES" envDefault:"narrator-samples"`

	// Upload limits
	UploadMaxBytes     int64         `env:"UPLOAD_MAX_BYTES"      envDefault:"524288000"`
	BulkUploadMaxFiles int           `env:"BULK_UPLOAD_MAX_FILES" envDefault:"50"`
	SignedURLTTL       time.Duration `env:"SIGNED_URL_TTL"        envDefault:"1h"`

	// Background jobs
	OrphanSweepSchedule string        `env:"ORPHAN_SWEEP_SCHEDULE" envDefault:"@every 15m"`
	DashboardCacheTTL   time.Duration `env:"DASHBOARD_CACHE_TTL"   envDefault:"5m"`

	// bcrypt hash of the key accepted in X-Admin-Key (automation clients)
	AdminAPIKeyHash string `env:"ADMIN_API_KEY_HASH"`

	// Cross-Origin Resource Sharing (comma separated)
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct and validates it.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Fields marked 'required' fail here when missing
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cross-field rules that struct tags cannot express.
func (c *Config) Validate() error {
	var problems []error

	switch c.StorageProvider {
	case StorageSupabase:
		if c.SupabaseURL == "" || c.SupabaseServiceKey == "" {
			problems = append(problems, errors.New("SUPABASE_URL and SUPABASE_SERVICE_KEY are required for supabase storage"))
		}
	case StorageS3:
		if c.S3Bucket == "" || c.S3AccessKeyID == "" || c.S3SecretAccessKey == "" {
			problems = append(problems, errors.New("S3_BUCKET, S3_ACCESS_KEY_ID and S3_SECRET_ACCESS_KEY are required for s3 storage"))
		}
	default:
		problems = append(problems, fmt.Errorf("unknown STORAGE_PROVIDER %q", c.StorageProvider))
	}

	if c.UploadMaxBytes <= 0 {
		problems = append(problems, errors.New("UPLOAD_MAX_BYTES must be positive"))
	}
	if c.BulkUploadMaxFiles <= 0 {
		problems = append(problems, errors.New("BULK_UPLOAD_MAX_FILES must be positive"))
	}

	if len(problems) > 0 {
		return fmt.Errorf("config: %w", errors.Join(problems...))
	}
	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins returns the trimmed EXTRA_ORIGINS entries.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
