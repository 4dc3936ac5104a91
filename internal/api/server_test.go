// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/navaadmin/internal/api"
	"github.com/taibuivan/navaadmin/internal/core/category"
	"github.com/taibuivan/navaadmin/internal/core/chapter"
	"github.com/taibuivan/navaadmin/internal/core/content"
	"github.com/taibuivan/navaadmin/internal/core/creator"
	"github.com/taibuivan/navaadmin/internal/core/review"
	"github.com/taibuivan/navaadmin/internal/dashboard"
	"github.com/taibuivan/navaadmin/internal/platform/config"
	"github.com/taibuivan/navaadmin/internal/platform/constants"
	"github.com/taibuivan/navaadmin/internal/platform/ctxutil"
	"github.com/taibuivan/navaadmin/internal/platform/sec"
	"github.com/taibuivan/navaadmin/internal/support/ticket"
	"github.com/taibuivan/navaadmin/internal/users/narrator"
	"github.com/taibuivan/navaadmin/internal/users/profile"
)

type rejectAllTokens struct{}

func (rejectAllTokens) VerifyToken(string) (*sec.AuthClaims, error) {
	return nil, errors.New("invalid token")
}

type listenerTokens struct{}

func (listenerTokens) VerifyToken(string) (*sec.AuthClaims, error) {
	return &sec.AuthClaims{UserID: "0190a1b2-0000-7000-8000-000000000001"}, nil
}

type noKeys struct{}

func (noKeys) Check(string) error { return sec.ErrAPIKeyDisabled }

type listenerRoles struct{}

func (listenerRoles) ResolveRole(context.Context, string) (sec.UserRole, bool, error) {
	return sec.RoleListener, false, nil
}

func newTestServer(t *testing.T, guards api.Guards) http.Handler {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	liveness, readiness := api.NewHealthHandlers(ctxutil.GetLogger(ctx))
	handlers := api.Handlers{
		Liveness:        liveness,
		Readiness:       readiness,
		Dashboard:       dashboard.NewHandler(nil),
		Categories:      category.NewHandler(nil),
		MusicCategories: category.NewHandler(nil),
		Creators:        creator.NewHandler(nil),
		Profiles:        profile.NewHandler(nil),
		Content:         content.NewHandler(nil),
		Chapters:        chapter.NewHandler(nil),
		Tickets:         ticket.NewHandler(nil),
		Reviews:         review.NewHandler(nil),
		Narrators:       narrator.NewHandler(nil),
	}

	cfg := &config.Config{ServerPort: "0", Environment: "development"}
	return api.NewServer(ctx, cfg, ctxutil.GetLogger(ctx), guards, handlers).Handler()
}

func TestServer_AdminGuard(t *testing.T) {
	tests := []struct {
		name   string
		guards api.Guards
		header map[string]string
		want   int
	}{
		{
			name:   "anonymous",
			guards: api.Guards{Verifier: rejectAllTokens{}, Keys: noKeys{}, Roles: listenerRoles{}},
			want:   http.StatusUnauthorized,
		},
		{
			name:   "bad token",
			guards: api.Guards{Verifier: rejectAllTokens{}, Keys: noKeys{}, Roles: listenerRoles{}},
			header: map[string]string{constants.HeaderAuthorization: "Bearer nope"},
			want:   http.StatusUnauthorized,
		},
		{
			name:   "disabled machine key",
			guards: api.Guards{Verifier: rejectAllTokens{}, Keys: noKeys{}, Roles: listenerRoles{}},
			header: map[string]string{constants.HeaderAdminKey: "secret"},
			want:   http.StatusUnauthorized,
		},
		{
			name:   "listener",
			guards: api.Guards{Verifier: listenerTokens{}, Keys: noKeys{}, Roles: listenerRoles{}},
			header: map[string]string{constants.HeaderAuthorization: "Bearer token"},
			want:   http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestServer(t, tt.guards)

			request := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
			for key, value := range tt.header {
				request.Header.Set(key, value)
			}
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.want, recorder.Code)
		})
	}
}

func TestServer_HealthIsPublic(t *testing.T) {
	handler := newTestServer(t, api.Guards{Verifier: rejectAllTokens{}, Keys: noKeys{}, Roles: listenerRoles{}})

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
}
