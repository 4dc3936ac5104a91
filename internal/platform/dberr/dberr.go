// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// # Classification
//
// Only a handful of SQLSTATE classes get a dedicated response. A unique
// violation is always reported as a duplicate; every other Postgres error
// keeps its own message so the admin panel can show it verbatim.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/navaadmin/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
//
// # Parameters
//   - err: The raw error returned by pgx.
//   - action: snake_case name of the failed operation, kept in the cause for logs.
//
// # Returns
//   - nil when err is nil, otherwise an [*apperr.AppError].
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// Already classified further down the stack
	if apperr.IsAppError(err) {
		return err
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	cause := fmt.Errorf("%s: %w", action, err)

	// 2. SQLSTATE mapping
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Duplicate(cause)

		case pgerrcode.ForeignKeyViolation:
			conflict := apperr.Conflict("Record is referenced by other records")
			conflict.Cause = cause
			return conflict

		case pgerrcode.InvalidTextRepresentation, pgerrcode.NotNullViolation, pgerrcode.CheckViolation:
			invalid := apperr.ValidationError(pgError.Message)
			invalid.Cause = cause
			return invalid
		}

		return apperr.Database(pgError.Error(), cause)
	}

	// 3. Connection and driver errors
	return apperr.Internal(cause)
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint violation.
func IsUniqueViolation(err error) bool {
	var pgError *pgconn.PgError
	return errors.As(err, &pgError) && pgError.Code == pgerrcode.UniqueViolation
}
