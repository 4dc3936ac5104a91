// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/navaadmin/internal/platform/apperr"
	"github.com/taibuivan/navaadmin/internal/platform/dberr"
	"github.com/taibuivan/navaadmin/internal/platform/respond"
)

func decodeError(t *testing.T, recorder *httptest.ResponseRecorder) respond.ErrorEnvelope {
	t.Helper()
	var envelope respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return envelope
}

/*
TestError_Duplicate verifies that a unique violation reaches the client as a duplicate.
*/
func TestError_Duplicate(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/api/v1/categories", nil)

	respond.Error(recorder, request, dberr.Wrap(&pgconn.PgError{Code: "23505"}, "create_category"))

	assert.Equal(t, http.StatusConflict, recorder.Code)
	envelope := decodeError(t, recorder)
	assert.Equal(t, apperr.CodeDuplicate, envelope.Code)
	assert.Equal(t, "Duplicate record", envelope.Error)
}

/*
TestError_DatabaseMessageVerbatim verifies unmapped database errors keep their text.
*/
func TestError_DatabaseMessageVerbatim(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/v1/reviews", nil)

	pgError := &pgconn.PgError{Severity: "ERROR", Code: "42703", Message: `column "foo" does not exist`}
	respond.Error(recorder, request, dberr.Wrap(pgError, "list_reviews"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Equal(t, pgError.Error(), decodeError(t, recorder).Error)
}

/*
TestError_PlainError verifies that unknown errors are hidden behind a generic message.
*/
func TestError_PlainError(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/", nil)

	respond.Error(recorder, request, errors.New("secret detail"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	envelope := decodeError(t, recorder)
	assert.Equal(t, "INTERNAL_ERROR", envelope.Code)
	assert.NotContains(t, envelope.Error, "secret")
}

func TestOK_Envelope(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.OK(recorder, map[string]int{"total": 3})

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":{"total":3}}`, recorder.Body.String())
}
