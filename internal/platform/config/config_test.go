// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/navaadmin/internal/platform/config"
)

func setBaseEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/postgres")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("SUPABASE_JWT_SECRET", "secret")
	t.Setenv("SUPABASE_URL", "https://project.supabase.co")
	t.Setenv("SUPABASE_SERVICE_KEY", "service-key")
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, config.StorageSupabase, cfg.StorageProvider)
	assert.Equal(t, "audiobook-covers", cfg.BucketCovers)
	assert.Equal(t, "audiobook-audio", cfg.BucketAudio)
	assert.Equal(t, "ebook-files", cfg.BucketEbooks)
	assert.Equal(t, "profile-images", cfg.BucketProfileImages)
	assert.Equal(t, time.Hour, cfg.SignedURLTTL)
	assert.Equal(t, 50, cfg.BulkUploadMaxFiles)
	assert.False(t, cfg.RunMigrations)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestValidate_Storage(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{"supabase_ok", func(c *config.Config) {}, false},
		{"supabase_missing_key", func(c *config.Config) { c.SupabaseServiceKey = "" }, true},
		{"s3_missing_bucket", func(c *config.Config) { c.StorageProvider = config.StorageS3 }, true},
		{"s3_ok", func(c *config.Config) {
			c.StorageProvider = config.StorageS3
			c.S3Bucket = "media"
			c.S3AccessKeyID = "id"
			c.S3SecretAccessKey = "secret"
		}, false},
		{"unknown_provider", func(c *config.Config) { c.StorageProvider = "ftp" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{
				StorageProvider:    config.StorageSupabase,
				SupabaseURL:        "https://project.supabase.co",
				SupabaseServiceKey: "key",
				UploadMaxBytes:     1024,
				BulkUploadMaxFiles: 10,
			}
			tt.mutate(cfg)

			if tt.wantErr {
				assert.Error(t, cfg.Validate())
			} else {
				assert.NoError(t, cfg.Validate())
			}
		})
	}
}

func TestAllowedOrigins(t *testing.T) {
	cfg := &config.Config{ExtraOrigins: " https://admin.nava.ir , ,https://staging.nava.ir"}
	assert.Equal(t, []string{"https://admin.nava.ir", "https://staging.nava.ir"}, cfg.AllowedOrigins())
}
