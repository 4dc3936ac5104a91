// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package narrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/navaadmin/internal/platform/apperr"
	"github.com/taibuivan/navaadmin/internal/platform/database/schema"
	"github.com/taibuivan/navaadmin/internal/platform/dberr"
	"github.com/taibuivan/navaadmin/internal/platform/postgres"
	"github.com/taibuivan/navaadmin/internal/platform/sec"
)

func errNotPending() error {
	return apperr.Conflict("Request is no longer pending")
}

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.DB
}

// NewPostgresRepository constructs a PostgreSQL backed narrator request store.
func NewPostgresRepository(db postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func requestSelect() string {
	n, p := schema.NarratorRequest, schema.Profile
	return fmt.Sprintf(`SELECT %s, p.%s, p.%s FROM %s n LEFT JOIN %s p ON p.%s = n.%s`,
		schema.Qualified("n", n.ID, n.UserID, n.Experience, n.SampleAudioPath, n.Status, n.AdminNote, n.ReviewedBy, n.ReviewedAt, n.CreatedAt),
		p.DisplayName, p.Email,
		n.Table, p.Table, p.ID, n.UserID)
}

func scanRequest(row pgx.Row) (*Request, error) {
	r := &Request{}
	err := row.Scan(
		&r.ID, &r.UserID, &r.Experience, &r.SampleAudioPath, &r.Status, &r.AdminNote,
		&r.ReviewedBy, &r.ReviewedAt, &r.CreatedAt, &r.UserName, &r.Email,
	)
	return r, err
}

// List returns one page of requests, newest first, with the total count.
func (repository *PostgresRepository) List(context context.Context, status string, limit, offset int) ([]*Request, int, error) {
	n := schema.NarratorRequest

	where := ` WHERE 1=1`
	var args []any
	if status != "" {
		args = append(args, status)
		where += fmt.Sprintf(` AND n.%s = $%d`, n.Status, len(args))
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s n%s`, n.Table, where)
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_narrator_requests")
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`%s%s ORDER BY n.%s DESC LIMIT $%d OFFSET $%d`, requestSelect(), where, n.CreatedAt, len(args)-1, len(args))

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_narrator_requests")
	}
	defer rows.Close()

	requests := []*Request{}
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_narrator_request")
		}
		requests = append(requests, request)
	}
	return requests, total, dberr.Wrap(rows.Err(), "list_narrator_requests")
}

// Get fetches a request joined with its applicant profile.
func (repository *PostgresRepository) Get(context context.Context, id string) (*Request, error) {
	query := fmt.Sprintf(`%s WHERE n.%s = $1`, requestSelect(), schema.NarratorRequest.ID)

	request, err := scanRequest(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_narrator_request")
	}
	return request, nil
}

func decideQuery() string {
	n := schema.NarratorRequest
	return fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = NOW()
		WHERE %s = $1 AND %s = $5
		RETURNING %s
	`, n.Table, n.Status, n.AdminNote, n.ReviewedBy, n.ReviewedAt, n.ID, n.Status, n.UserID)
}

/*
Approve decides the request and promotes the profile in one transaction.

Admins keep their role; only listeners become narrators.
*/
func (repository *PostgresRepository) Approve(context context.Context, id string, decision Decision) (string, error) {
	p := schema.Profile
	promoteQuery := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1 AND %s = $3`,
		p.Table, p.Role, p.UpdatedAt, p.ID, p.Role)

	var userID string
	err := postgres.InTx(context, repository.db, func(transaction pgx.Tx) error {
		err := transaction.QueryRow(context, decideQuery(), id, StatusApproved, decision.Note, decision.ReviewerID, StatusPending).Scan(&userID)
		if errors.Is(err, pgx.ErrNoRows) {
			return errNotPending()
		}
		if err != nil {
			return dberr.Wrap(err, "approve_narrator_request")
		}

		_, err = transaction.Exec(context, promoteQuery, userID, sec.RoleNarrator, sec.RoleListener)
		return dberr.Wrap(err, "promote_narrator")
	})
	if err != nil {
		return "", err
	}
	return userID, nil
}

// Reject marks a pending request rejected. The applicant role is untouched.
func (repository *PostgresRepository) Reject(context context.Context, id string, decision Decision) error {
	var userID string
	err := repository.db.QueryRow(context, decideQuery(), id, StatusRejected, decision.Note, decision.ReviewerID, StatusPending).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return errNotPending()
	}
	return dberr.Wrap(err, "reject_narrator_request")
}
