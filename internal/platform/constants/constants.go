// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the admin backend.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Headers and JSON field names shared by middleware and handlers.
  - Redis key prefixes.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "nava-admin"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	// Bulk chapter uploads are large, so this is far above a JSON-only API.
	DefaultReadTimeout = 10 * time.Minute

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 15 * time.Minute

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 5 * time.Second

	// GlobalRequestTimeout is the deadline for ordinary (non-upload) requests.
	GlobalRequestTimeout = 30 * time.Second

	// UploadRequestTimeout is the deadline for upload routes.
	UploadRequestTimeout = 15 * time.Minute

	// StatementTimeout bounds a single SQL statement.
	StatementTimeout = 30 * time.Second

	// OrphanCleanupTimeout bounds removing or queueing an orphaned object
	// after the request that uploaded it has failed.
	OrphanCleanupTimeout = 10 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 20.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 60

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderAuthorization = "Authorization"
	HeaderAdminKey      = "X-Admin-Key"
)

// # Authentication

const (
	// SupabaseAudience is the 'aud' claim of Supabase access tokens for signed-in users.
	SupabaseAudience = "authenticated"

	// RoleCacheTTL bounds how long a resolved profile role is trusted.
	RoleCacheTTL = 60 * time.Second
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldItems   = "items"
	FieldTotal   = "total"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldChecks  = "checks"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixProfileRole = "admin:profile_role:"
	RedisKeyDashboardStats = "admin:dashboard:stats"
	RedisKeyStorageOrphans = "storage:orphans"
)
