// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/navaadmin/internal/platform/apperr"
	"github.com/taibuivan/navaadmin/internal/platform/database/schema"
	"github.com/taibuivan/navaadmin/internal/platform/dberr"
	"github.com/taibuivan/navaadmin/internal/platform/postgres"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.DB
}

// NewPostgresRepository constructs a PostgreSQL backed content store.
func NewPostgresRepository(db postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func audiobookColumns() string {
	return schema.List(schema.Audiobook.Columns()...)
}

func scanAudiobook(row pgx.Row) (*Audiobook, error) {
	a := &Audiobook{}
	err := row.Scan(
		&a.ID, &a.TitleFa, &a.TitleEn, &a.DescriptionFa, &a.DescriptionEn,
		&a.Price, &a.IsFree, &a.IsFeatured, &a.IsBrand, &a.ContentType, &a.Status,
		&a.CoverURL, &a.EbookPath, &a.ChapterCount, &a.TotalDuration,
		&a.RejectionReason, &a.SubmittedAt, &a.ReviewedAt, &a.ReviewedBy,
		&a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

/*
List returns one page of content items, newest first, and the total count
of items matching filter.
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Audiobook, int, error) {
	t := schema.Audiobook

	where := ` WHERE 1=1`
	var args []any
	if len(filter.Statuses) > 0 {
		args = append(args, filter.Statuses)
		where += fmt.Sprintf(` AND %s = ANY($%d)`, t.Status, len(args))
	}
	if filter.ContentType != "" {
		args = append(args, filter.ContentType)
		where += fmt.Sprintf(` AND %s = $%d`, t.ContentType, len(args))
	}
	if filter.Featured != nil {
		args = append(args, *filter.Featured)
		where += fmt.Sprintf(` AND %s = $%d`, t.IsFeatured, len(args))
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		where += fmt.Sprintf(` AND (%s ILIKE $%d OR %s ILIKE $%d)`, t.TitleFa, len(args), t.TitleEn, len(args))
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s%s`, t.Table, where)
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_audiobooks")
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM %s%s ORDER BY %s DESC LIMIT $%d OFFSET $%d`,
		audiobookColumns(), t.Table, where, t.CreatedAt, len(args)-1, len(args))

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_audiobooks")
	}
	defer rows.Close()

	items := []*Audiobook{}
	for rows.Next() {
		item, err := scanAudiobook(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_audiobook")
		}
		items = append(items, item)
	}

	return items, total, dberr.Wrap(rows.Err(), "list_audiobooks")
}

// Get fetches an audiobook row by ID.
func (repository *PostgresRepository) Get(context context.Context, id string) (*Audiobook, error) {
	t := schema.Audiobook
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, audiobookColumns(), t.Table, t.ID)

	item, err := scanAudiobook(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_audiobook")
	}
	return item, nil
}

// Create inserts audiobook and fills its ID and timestamps.
func (repository *PostgresRepository) Create(context context.Context, audiobook *Audiobook) error {
	t := schema.Audiobook
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s, %s, %s
	`,
		t.Table, t.TitleFa, t.TitleEn, t.DescriptionFa, t.DescriptionEn, t.ContentType, t.Status, t.IsFree,
		t.ID, t.CreatedAt, t.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		audiobook.TitleFa, audiobook.TitleEn, audiobook.DescriptionFa, audiobook.DescriptionEn,
		audiobook.ContentType, audiobook.Status, audiobook.IsFree,
	).Scan(&audiobook.ID, &audiobook.CreatedAt, &audiobook.UpdatedAt)
	return dberr.Wrap(err, "create_audiobook")
}

// Update writes the editable columns of audiobook.
func (repository *PostgresRepository) Update(context context.Context, audiobook *Audiobook) error {
	t := schema.Audiobook
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		t.Table, t.TitleFa, t.TitleEn, t.DescriptionFa, t.DescriptionEn, t.ContentType, t.UpdatedAt,
		t.ID,
		t.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		audiobook.ID, audiobook.TitleFa, audiobook.TitleEn, audiobook.DescriptionFa, audiobook.DescriptionEn, audiobook.ContentType,
	).Scan(&audiobook.UpdatedAt)
	return dberr.Wrap(err, "update_audiobook")
}

// UpdateStatus moves an item between statuses, failing when it is no longer in from.
func (repository *PostgresRepository) UpdateStatus(context context.Context, id string, from Status, change StatusChange) error {
	t := schema.Audiobook
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $3,
		    %s = $4,
		    %s = CASE WHEN $5 THEN NOW() ELSE %s END,
		    %s = CASE WHEN $6 THEN NOW() ELSE %s END,
		    %s = CASE WHEN $6 THEN $7 ELSE %s END,
		    %s = NOW()
		WHERE %s = $1 AND %s = $2
	`,
		t.Table,
		t.Status,
		t.RejectionReason,
		t.SubmittedAt, t.SubmittedAt,
		t.ReviewedAt, t.ReviewedAt,
		t.ReviewedBy, t.ReviewedBy,
		t.UpdatedAt,
		t.ID, t.Status,
	)

	cmd, err := repository.db.Exec(context, query,
		id, from, change.To, change.RejectionReason, change.MarkSubmitted, change.MarkReviewed, change.ReviewedBy,
	)
	if err != nil {
		return dberr.Wrap(err, "update_audiobook_status")
	}
	if cmd.RowsAffected() == 0 {
		return apperr.Conflict("Content status changed in the meantime, reload and try again")
	}
	return nil
}

// SetFlags writes the price and the free, featured and brand flags of audiobook.
func (repository *PostgresRepository) SetFlags(context context.Context, audiobook *Audiobook) error {
	t := schema.Audiobook
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		t.Table, t.Price, t.IsFree, t.IsFeatured, t.IsBrand, t.UpdatedAt,
		t.ID,
		t.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		audiobook.ID, audiobook.Price, audiobook.IsFree, audiobook.IsFeatured, audiobook.IsBrand,
	).Scan(&audiobook.UpdatedAt)
	return dberr.Wrap(err, "set_audiobook_flags")
}

// SetCover stores the public cover URL of an item.
func (repository *PostgresRepository) SetCover(context context.Context, id string, coverURL *string) error {
	return repository.setColumn(context, id, schema.Audiobook.CoverURL, coverURL, "set_audiobook_cover")
}

// SetEbook stores the object path of the ebook file of an item.
func (repository *PostgresRepository) SetEbook(context context.Context, id string, ebookPath *string) error {
	return repository.setColumn(context, id, schema.Audiobook.EbookPath, ebookPath, "set_audiobook_ebook")
}

func (repository *PostgresRepository) setColumn(context context.Context, id, column string, value *string, action string) error {
	t := schema.Audiobook
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`, t.Table, column, t.UpdatedAt, t.ID)

	cmd, err := repository.db.Exec(context, query, id, value)
	if err != nil {
		return dberr.Wrap(err, action)
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// ChapterAudioPaths lists the audio objects of every chapter of an item.
func (repository *PostgresRepository) ChapterAudioPaths(context context.Context, id string) ([]string, error) {
	c := schema.Chapter
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s <> ''`, c.AudioPath, c.Table, c.AudiobookID, c.AudioPath)

	rows, err := repository.db.Query(context, query, id)
	if err != nil {
		return nil, dberr.Wrap(err, "list_chapter_paths")
	}
	paths, err := pgx.CollectRows(rows, pgx.RowTo[string])
	return paths, dberr.Wrap(err, "list_chapter_paths")
}

// Delete removes the row. Chapters, metadata and links cascade.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	t := schema.Audiobook
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_audiobook")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
