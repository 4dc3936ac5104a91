// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/navaadmin/internal/api"
	"github.com/taibuivan/navaadmin/internal/platform/ctxutil"
)

type readyBody struct {
	Data struct {
		Status string `json:"status"`
		Checks []struct {
			Name string `json:"name"`
			OK   bool   `json:"ok"`
		} `json:"checks"`
	} `json:"data"`
}

func probe(err error) func(context.Context) error {
	return func(context.Context) error { return err }
}

func TestReadiness(t *testing.T) {
	logger := ctxutil.GetLogger(context.Background())

	tests := []struct {
		name       string
		redisErr   error
		wantStatus int
		wantBody   string
	}{
		{"all healthy", nil, http.StatusOK, "ready"},
		{"redis down", errors.New("connection refused"), http.StatusServiceUnavailable, "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, readiness := api.NewHealthHandlers(logger,
				api.Check{Name: "postgres", Probe: probe(nil)},
				api.Check{Name: "redis", Probe: probe(tt.redisErr)},
			)

			recorder := httptest.NewRecorder()
			readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

			assert.Equal(t, tt.wantStatus, recorder.Code)

			var body readyBody
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody, body.Data.Status)
			require.Len(t, body.Data.Checks, 2)
			assert.Equal(t, tt.redisErr == nil, body.Data.Checks[1].OK)
		})
	}
}

func TestLiveness(t *testing.T) {
	liveness, _ := api.NewHealthHandlers(ctxutil.GetLogger(context.Background()))

	recorder := httptest.NewRecorder()
	liveness(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":{"status":"ok"}}`, recorder.Body.String())
}
