// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package profile lets admins inspect and moderate platform users.

Accounts live in Supabase Auth; every account has one row in 'profiles'
holding its platform role and a disabled flag. This package changes those two
fields and resolves them for the admin guard.

# Architecture

  - Entities: Profile, Access.
  - Rules: an admin cannot demote or disable their own account.
  - Cache: resolved access is kept in Redis for a short TTL and dropped on change.
*/
package profile

import (
	"context"
	"time"

	"github.com/taibuivan/navaadmin/internal/platform/sec"
)

// # Domain Entities

// Profile is the platform-side record of a user.
type Profile struct {
	ID          string       `json:"id"`
	DisplayName *string      `json:"display_name"`
	Email       *string      `json:"email"`
	AvatarURL   *string      `json:"avatar_url"`
	Role        sec.UserRole `json:"role"`
	IsDisabled  bool         `json:"is_disabled"`
	CreatedAt   time.Time    `json:"created_at"`
}

// Access is the subset of a profile the admin guard needs.
type Access struct {
	Role     sec.UserRole `json:"role"`
	Disabled bool         `json:"disabled"`
}

// Filter narrows a profile listing.
type Filter struct {
	Role     string
	Disabled *bool
	Query    string
}

const (
	FieldRole     = "role"
	FieldDisabled = "is_disabled"
)

// # Repository Contracts

// Repository persists profiles.
type Repository interface {
	List(context context.Context, filter Filter, limit, offset int) ([]*Profile, int, error)
	Get(context context.Context, id string) (*Profile, error)
	GetAccess(context context.Context, id string) (*Access, error)
	SetRole(context context.Context, id string, role sec.UserRole) error
	SetDisabled(context context.Context, id string, disabled bool) error
}

// AccessCache stores resolved [Access] values.
type AccessCache interface {
	/*
		Get returns the cached access.

		Returns:
		  - *Access: nil on a cache miss
		  - error: Connectivity errors only
	*/
	Get(context context.Context, userID string) (*Access, error)
	Set(context context.Context, userID string, access *Access) error
	Invalidate(context context.Context, userID string) error
}
