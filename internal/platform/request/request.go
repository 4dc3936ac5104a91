// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction, body decoding
and multipart parsing, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/navaadmin/internal/platform/apperr"
	"github.com/taibuivan/navaadmin/internal/platform/ctxutil"
	"github.com/taibuivan/navaadmin/internal/platform/sec"
	"github.com/taibuivan/navaadmin/internal/platform/validate"
)

// multipartMemory is the part of a multipart body kept in RAM; larger file
// parts are spooled to temporary files by net/http.
const multipartMemory = 8 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: any (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target any) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
UUIDParam retrieves a named URL parameter and checks that it is a UUID.

Returns:
  - string: The raw parameter
  - error: VALIDATION_ERROR when the parameter is not a UUID
*/
func UUIDParam(request *http.Request, name string) (string, error) {
	value := chi.URLParam(request, name)
	validator := &validate.Validator{}
	if err := validator.UUID(name, value).Err(); err != nil {
		return "", err
	}
	return value, nil
}

/*
IntParam retrieves a named integer URL parameter.
*/
func IntParam(request *http.Request, name string) (int, error) {
	value, err := strconv.Atoi(chi.URLParam(request, name))
	if err != nil {
		return 0, validate.RequiredError(name, "Must be an integer")
	}
	return value, nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
QueryBool parses an optional boolean query parameter.

Returns nil when the parameter is absent or not a boolean.
*/
func QueryBool(request *http.Request, name string) *bool {
	raw := request.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &value
}

/*
QueryInt parses an optional integer query parameter, returning 0 when absent.
*/
func QueryInt(request *http.Request, name string) int {
	value, _ := strconv.Atoi(request.URL.Query().Get(name))
	return value
}

/*
ParseMultipart limits the body to maxBytes and parses the multipart form.

File parts beyond the in-memory threshold are written to temporary files, so
their bytes are only read when a handler opens them.

Returns:
  - *multipart.Form: The parsed form (call RemoveAll when done)
  - error: VALIDATION_ERROR for malformed or oversized bodies
*/
func ParseMultipart(writer http.ResponseWriter, request *http.Request, maxBytes int64) (*multipart.Form, error) {
	request.Body = http.MaxBytesReader(writer, request.Body, maxBytes)

	if err := request.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperr.ValidationError("Upload exceeds the maximum allowed size")
		}
		return nil, apperr.ValidationError("Invalid multipart body")
	}

	return request.MultipartForm, nil
}

/*
FormFile returns the first file sent under field.

Returns:
  - *multipart.FileHeader: The file part
  - error: VALIDATION_ERROR when the field has no file
*/
func FormFile(form *multipart.Form, field string) (*multipart.FileHeader, error) {
	if form == nil || len(form.File[field]) == 0 {
		return nil, validate.RequiredError(field, "A file is required")
	}
	return form.File[field][0], nil
}

/*
FormValue returns the first value sent under field, or "".
*/
func FormValue(form *multipart.Form, field string) string {
	if form == nil || len(form.Value[field]) == 0 {
		return ""
	}
	return form.Value[field][0]
}

/*
Claims extracts the authenticated user claims from the request context.

Returns nil if the request is not authenticated.
*/
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

/*
RequiredClaims ensures the request is authenticated and returns the user claims.

Returns:
  - *sec.AuthClaims: The authenticated user claims
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return claims, nil
}

/*
RequiredUserID returns the User ID of the currently logged-in user.

Returns:
  - string: User UUID
  - error: apperr.Unauthorized if not authenticated
*/
func RequiredUserID(request *http.Request) (string, error) {
	claims, err := RequiredClaims(request)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}
