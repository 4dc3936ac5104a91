// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/navaadmin/internal/platform/database/schema"
	"github.com/taibuivan/navaadmin/internal/platform/dberr"
	"github.com/taibuivan/navaadmin/internal/platform/postgres"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.DB
}

// NewPostgresRepository constructs a PostgreSQL backed review store.
func NewPostgresRepository(db postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func reviewSelect() string {
	r, a, p := schema.Review, schema.Audiobook, schema.Profile
	return fmt.Sprintf(`
		SELECT %s, a.%s, p.%s
		FROM %s r
		JOIN %s a ON a.%s = r.%s
		LEFT JOIN %s p ON p.%s = r.%s
	`,
		schema.Qualified("r", r.ID, r.AudiobookID, r.UserID, r.Rating, r.Body, r.Status, r.CreatedAt, r.UpdatedAt),
		a.TitleFa, p.DisplayName,
		r.Table,
		a.Table, a.ID, r.AudiobookID,
		p.Table, p.ID, r.UserID,
	)
}

func scanReview(row pgx.Row) (*Review, error) {
	r := &Review{}
	err := row.Scan(&r.ID, &r.AudiobookID, &r.UserID, &r.Rating, &r.Body, &r.Status, &r.CreatedAt, &r.UpdatedAt, &r.AudiobookTitle, &r.UserName)
	return r, err
}

// List returns one page of reviews, newest first, with the total count.
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Review, int, error) {
	r := schema.Review

	where := ` WHERE 1=1`
	var args []any
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(` AND r.%s = $%d`, r.Status, len(args))
	}
	if filter.AudiobookID != "" {
		args = append(args, filter.AudiobookID)
		where += fmt.Sprintf(` AND r.%s = $%d`, r.AudiobookID, len(args))
	}
	if filter.Rating != 0 {
		args = append(args, filter.Rating)
		where += fmt.Sprintf(` AND r.%s = $%d`, r.Rating, len(args))
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s r%s`, r.Table, where)
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_reviews")
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`%s%s ORDER BY r.%s DESC LIMIT $%d OFFSET $%d`, reviewSelect(), where, r.CreatedAt, len(args)-1, len(args))

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_reviews")
	}
	defer rows.Close()

	reviews := []*Review{}
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_review")
		}
		reviews = append(reviews, review)
	}
	return reviews, total, dberr.Wrap(rows.Err(), "list_reviews")
}

// Get fetches a review joined with its audiobook title and reviewer name.
func (repository *PostgresRepository) Get(context context.Context, id string) (*Review, error) {
	query := fmt.Sprintf(`%s WHERE r.%s = $1`, reviewSelect(), schema.Review.ID)

	review, err := scanReview(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_review")
	}
	return review, nil
}

// SetStatus updates the status column of a review.
func (repository *PostgresRepository) SetStatus(context context.Context, id string, status Status) error {
	r := schema.Review
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`, r.Table, r.Status, r.UpdatedAt, r.ID)

	cmd, err := repository.db.Exec(context, query, id, status)
	if err != nil {
		return dberr.Wrap(err, "set_review_status")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// Delete removes a review row.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	r := schema.Review
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, r.Table, r.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_review")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
