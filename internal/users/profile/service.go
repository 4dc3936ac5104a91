// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import (
	"context"
	"log/slog"

	"github.com/taibuivan/navaadmin/internal/platform/apperr"
	"github.com/taibuivan/navaadmin/internal/platform/ctxutil"
	"github.com/taibuivan/navaadmin/internal/platform/sec"
	"github.com/taibuivan/navaadmin/internal/platform/validate"
	"github.com/taibuivan/navaadmin/pkg/persian"
)

// Service implements profile moderation and the admin guard's role lookup.
type Service struct {
	repo   Repository
	cache  AccessCache
	logger *slog.Logger
}

// NewService creates the service. cache may be nil to always read the database.
func NewService(repo Repository, cache AccessCache, logger *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, logger: logger}
}

// List returns one page of profiles matching filter, plus the total count.
func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*Profile, int, error) {
	if filter.Role != "" {
		validator := &validate.Validator{}
		if err := validator.OneOf(FieldRole, filter.Role, sec.Roles...).Err(); err != nil {
			return nil, 0, err
		}
	}
	filter.Query = persian.Normalize(filter.Query)
	return service.repo.List(context, filter, limit, offset)
}

// Get returns a single profile by ID.
func (service *Service) Get(context context.Context, id string) (*Profile, error) {
	return service.repo.Get(context, id)
}

/*
ChangeRole sets the platform role of a user.

Returns:
  - error: FORBIDDEN when an admin tries to demote themselves
*/
func (service *Service) ChangeRole(context context.Context, id string, role sec.UserRole) error {
	validator := &validate.Validator{}
	if err := validator.OneOf(FieldRole, string(role), sec.Roles...).Err(); err != nil {
		return err
	}

	if id == ctxutil.GetActorID(context) && role != sec.RoleAdmin {
		return apperr.Forbidden("You cannot remove your own admin role")
	}

	if err := service.repo.SetRole(context, id, role); err != nil {
		return err
	}
	service.Invalidate(context, id)

	ctxutil.GetLogger(context).Info("profile_role_changed",
		slog.String("user_id", id),
		slog.String("role", string(role)),
		slog.String("actor_id", ctxutil.GetActorID(context)),
	)
	return nil
}

/*
SetDisabled enables or disables an account.

A disabled account keeps its data but fails the admin guard and, in the
listener app, sign-in.

Returns:
  - error: FORBIDDEN when an admin tries to disable themselves
*/
func (service *Service) SetDisabled(context context.Context, id string, disabled bool) error {
	if disabled && id == ctxutil.GetActorID(context) {
		return apperr.Forbidden("You cannot disable your own account")
	}

	if err := service.repo.SetDisabled(context, id, disabled); err != nil {
		return err
	}
	service.Invalidate(context, id)

	ctxutil.GetLogger(context).Warn("profile_disabled_changed",
		slog.String("user_id", id),
		slog.Bool("is_disabled", disabled),
		slog.String("actor_id", ctxutil.GetActorID(context)),
	)
	return nil
}

// # Role Resolution

/*
ResolveRole returns the role and disabled flag of userID.

A cache failure never blocks a request: the database answers instead.
*/
func (service *Service) ResolveRole(context context.Context, userID string) (sec.UserRole, bool, error) {
	if service.cache != nil {
		cached, err := service.cache.Get(context, userID)
		if err != nil {
			service.logger.WarnContext(context, "access_cache_unavailable", slog.Any("error", err))
		} else if cached != nil {
			return cached.Role, cached.Disabled, nil
		}
	}

	access, err := service.repo.GetAccess(context, userID)
	if err != nil {
		return "", false, err
	}

	if service.cache != nil {
		if err := service.cache.Set(context, userID, access); err != nil {
			service.logger.WarnContext(context, "access_cache_set_failed", slog.Any("error", err))
		}
	}
	return access.Role, access.Disabled, nil
}

// Invalidate drops the cached access of userID. Other packages that change
// roles (narrator approval) call it after committing.
func (service *Service) Invalidate(context context.Context, userID string) {
	if service.cache == nil {
		return
	}
	if err := service.cache.Invalidate(context, userID); err != nil {
		service.logger.WarnContext(context, "access_cache_invalidate_failed",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
	}
}
