// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/navaadmin/internal/platform/apperr"
	"github.com/taibuivan/navaadmin/internal/platform/constants"
	"github.com/taibuivan/navaadmin/internal/platform/ctxutil"
	"github.com/taibuivan/navaadmin/internal/platform/respond"
	"github.com/taibuivan/navaadmin/internal/platform/sec"
)

// TokenVerifier verifies Supabase access tokens.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// KeyChecker verifies the machine API key.
type KeyChecker interface {
	Check(presentedKey string) error
}

// RoleResolver loads the platform role of an authenticated user.
//
// Supabase tokens say nothing about profiles.role, so the admin guard has to
// ask the database (through a short-lived cache).
type RoleResolver interface {
	ResolveRole(context context.Context, userID string) (role sec.UserRole, disabled bool, err error)
}

// Authenticate extracts and verifies the caller's credentials.
//
// # Flow
//  1. 'X-Admin-Key' present: verify it with [KeyChecker]; the caller becomes a machine admin.
//  2. 'Authorization: Bearer <token>' present: verify it with [TokenVerifier].
//  3. Neither present: the request proceeds as anonymous.
//  4. On success the [*sec.AuthClaims] are stored in the request context.
func Authenticate(verifier TokenVerifier, keys KeyChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Machine Key ────────────────────────────────────────────────
			if adminKey := request.Header.Get(constants.HeaderAdminKey); adminKey != "" {
				if err := keys.Check(adminKey); err != nil {
					respond.Error(writer, request, apperr.Unauthorized("Invalid admin key"))
					return
				}
				claims := &sec.AuthClaims{Machine: true, AppRole: sec.RoleAdmin}
				next.ServeHTTP(writer, request.WithContext(ctxutil.WithAuthUser(request.Context(), claims)))
				return
			}

			// ── 2. Anonymous Access ───────────────────────────────────────────
			authHeader := request.Header.Get(constants.HeaderAuthorization)
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 3. Format Validation ──────────────────────────────────────────
			scheme, tokenStr, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "bearer") || tokenStr == "" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// ── 4. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyToken(tokenStr)
			if err != nil {
				ctxutil.GetLogger(request.Context()).Debug("token_rejected", slog.Any("error", err))
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			next.ServeHTTP(writer, request.WithContext(ctxutil.WithAuthUser(request.Context(), claims)))
		})
	}
}

// RequireAdmin blocks every request that does not come from an enabled admin.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
//
// # Flow
//  1. No claims in context: 401.
//  2. Resolve the profile role unless already known (machine key).
//  3. Disabled profile or role below admin: 403.
func RequireAdmin(resolver RoleResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := ctxutil.GetAuthUser(request.Context())

			// ── 1. Authentication Check ───────────────────────────────────────
			if claims == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			// ── 2. Role Resolution ────────────────────────────────────────────
			if !claims.Machine {
				role, disabled, err := resolver.ResolveRole(request.Context(), claims.UserID)
				if err != nil {
					if ae := apperr.As(err); ae != nil && ae.Code == "NOT_FOUND" {
						respond.Error(writer, request, apperr.Forbidden("No profile for this account"))
						return
					}
					respond.Error(writer, request, err)
					return
				}
				claims.AppRole = role
				claims.Disabled = disabled
			}

			// ── 3. Authorization Check ────────────────────────────────────────
			if claims.Disabled {
				respond.Error(writer, request, apperr.Forbidden("Account is disabled"))
				return
			}
			if !claims.AppRole.AtLeast(sec.RoleAdmin) {
				respond.Error(writer, request, apperr.Forbidden("Admin role required"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
