// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/navaadmin/internal/platform/apperr"
	"github.com/taibuivan/navaadmin/internal/platform/constants"
	"github.com/taibuivan/navaadmin/internal/platform/ctxutil"
	"github.com/taibuivan/navaadmin/internal/platform/middleware"
	"github.com/taibuivan/navaadmin/internal/platform/sec"
)

// # Test Doubles

type fakeVerifier struct{}

func (fakeVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	if token == "good" {
		return &sec.AuthClaims{UserID: "11111111-1111-1111-1111-111111111111"}, nil
	}
	return nil, errors.New("bad token")
}

type fakeKeys struct{}

func (fakeKeys) Check(key string) error {
	if key == "machine-key" {
		return nil
	}
	return sec.ErrAPIKeyDisabled
}

type fakeResolver struct {
	role     sec.UserRole
	disabled bool
	err      error
	calls    int
}

func (resolver *fakeResolver) ResolveRole(_ context.Context, _ string) (sec.UserRole, bool, error) {
	resolver.calls++
	return resolver.role, resolver.disabled, resolver.err
}

func guarded(resolver middleware.RoleResolver) http.Handler {
	final := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})
	return middleware.Authenticate(fakeVerifier{}, fakeKeys{})(middleware.RequireAdmin(resolver)(final))
}

// # Authentication & Authorization

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name     string
		headers  map[string]string
		resolver *fakeResolver
		want     int
	}{
		{"anonymous", nil, &fakeResolver{}, http.StatusUnauthorized},
		{"bad_scheme", map[string]string{"Authorization": "Basic abc"}, &fakeResolver{}, http.StatusUnauthorized},
		{"bad_token", map[string]string{"Authorization": "Bearer nope"}, &fakeResolver{}, http.StatusUnauthorized},
		{"listener", map[string]string{"Authorization": "Bearer good"}, &fakeResolver{role: sec.RoleListener}, http.StatusForbidden},
		{"disabled_admin", map[string]string{"Authorization": "Bearer good"}, &fakeResolver{role: sec.RoleAdmin, disabled: true}, http.StatusForbidden},
		{"no_profile", map[string]string{"Authorization": "Bearer good"}, &fakeResolver{err: apperr.NotFound("Profile")}, http.StatusForbidden},
		{"admin", map[string]string{"Authorization": "Bearer good"}, &fakeResolver{role: sec.RoleAdmin}, http.StatusOK},
		{"machine_key", map[string]string{constants.HeaderAdminKey: "machine-key"}, &fakeResolver{}, http.StatusOK},
		{"wrong_machine_key", map[string]string{constants.HeaderAdminKey: "guess"}, &fakeResolver{}, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
			for key, value := range tt.headers {
				request.Header.Set(key, value)
			}
			recorder := httptest.NewRecorder()

			guarded(tt.resolver).ServeHTTP(recorder, request)

			assert.Equal(t, tt.want, recorder.Code)
		})
	}
}

func TestRequireAdmin_MachineSkipsResolver(t *testing.T) {
	resolver := &fakeResolver{}
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderAdminKey, "machine-key")

	guarded(resolver).ServeHTTP(httptest.NewRecorder(), request)

	assert.Zero(t, resolver.calls)
}

// # Tracing & Safety

func TestRequestID(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, seen)
	assert.Equal(t, seen, recorder.Header().Get(constants.HeaderXRequestID))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXRequestID, "client-id")
	handler.ServeHTTP(httptest.NewRecorder(), request)
	assert.Equal(t, "client-id", seen)
}

func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery(ctxutil.GetLogger(context.Background()))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}

func TestTimeout_UploadsGetLongerDeadline(t *testing.T) {
	var remaining time.Duration
	handler := middleware.Timeout(time.Second, time.Hour)(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		deadline, ok := request.Context().Deadline()
		require.True(t, ok)
		remaining = time.Until(deadline)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.LessOrEqual(t, remaining, time.Second)

	upload := httptest.NewRequest(http.MethodPost, "/", nil)
	upload.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	handler.ServeHTTP(httptest.NewRecorder(), upload)
	assert.Greater(t, remaining, time.Minute)
}

// # CORS

type corsConfig struct {
	dev     bool
	origins []string
}

func (c corsConfig) IsDevelopment() bool      { return c.dev }
func (c corsConfig) AllowedOrigins() []string { return c.origins }

func TestCORS(t *testing.T) {
	handler := middleware.CORS(corsConfig{origins: []string{"https://admin.nava.ir"}})(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	}))

	request := httptest.NewRequest(http.MethodOptions, "/api/v1/audiobooks", nil)
	request.Header.Set("Origin", "https://admin.nava.ir")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Equal(t, "https://admin.nava.ir", recorder.Header().Get("Access-Control-Allow-Origin"))

	request = httptest.NewRequest(http.MethodGet, "/api/v1/audiobooks", nil)
	request.Header.Set("Origin", "https://evil.example")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
}

func TestRealIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("X-Forwarded-For", "10.0.0.1, 10.0.0.2")
	assert.Equal(t, "10.0.0.1", middleware.RealIP(request))
}
