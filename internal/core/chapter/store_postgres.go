// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

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

// NewPostgresRepository constructs a PostgreSQL backed chapter store.
func NewPostgresRepository(db postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func chapterColumns() string {
	return schema.List(schema.Chapter.Columns()...)
}

func scanChapter(row pgx.Row) (*Chapter, error) {
	c := &Chapter{}
	err := row.Scan(
		&c.ID, &c.AudiobookID, &c.Title, &c.ChapterIndex, &c.AudioPath,
		&c.DurationSeconds, &c.FileSize, &c.IsPreview, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

// EnsureAudiobook returns NOT_FOUND when the audiobook does not exist.
func (repository *PostgresRepository) EnsureAudiobook(context context.Context, audiobookID string) error {
	a := schema.Audiobook
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, a.Table, a.ID)

	var exists bool
	if err := repository.db.QueryRow(context, query, audiobookID).Scan(&exists); err != nil {
		return dberr.Wrap(err, "check_audiobook")
	}
	if !exists {
		return dberr.ErrNotFound
	}
	return nil
}

// ListByAudiobook returns the chapters of an audiobook ordered by chapter_index.
func (repository *PostgresRepository) ListByAudiobook(context context.Context, audiobookID string) ([]*Chapter, error) {
	c := schema.Chapter
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC`, chapterColumns(), c.Table, c.AudiobookID, c.ChapterIndex)

	rows, err := repository.db.Query(context, query, audiobookID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_chapters")
	}
	defer rows.Close()

	chapters := []*Chapter{}
	for rows.Next() {
		chapter, err := scanChapter(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_chapter")
		}
		chapters = append(chapters, chapter)
	}
	return chapters, dberr.Wrap(rows.Err(), "list_chapters")
}

// Get fetches a chapter by ID.
func (repository *PostgresRepository) Get(context context.Context, id string) (*Chapter, error) {
	c := schema.Chapter
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, chapterColumns(), c.Table, c.ID)

	chapter, err := scanChapter(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_chapter")
	}
	return chapter, nil
}

// Create inserts chapter at the next free chapter_index.
func (repository *PostgresRepository) Create(context context.Context, chapter *Chapter) error {
	c := schema.Chapter
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, (SELECT COALESCE(MAX(%s), 0) + 1 FROM %s WHERE %s = $1), $3, $4, $5, $6)
		RETURNING %s, %s, %s, %s
	`,
		c.Table, c.AudiobookID, c.Title, c.ChapterIndex, c.AudioPath, c.DurationSeconds, c.FileSize, c.IsPreview,
		c.ChapterIndex, c.Table, c.AudiobookID,
		c.ID, c.ChapterIndex, c.CreatedAt, c.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		chapter.AudiobookID, chapter.Title, chapter.AudioPath, chapter.DurationSeconds, chapter.FileSize, chapter.IsPreview,
	).Scan(&chapter.ID, &chapter.ChapterIndex, &chapter.CreatedAt, &chapter.UpdatedAt)
	return dberr.Wrap(err, "create_chapter")
}

// Update writes the editable columns of chapter.
func (repository *PostgresRepository) Update(context context.Context, chapter *Chapter) error {
	c := schema.Chapter
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`, c.Table, c.Title, c.IsPreview, c.UpdatedAt, c.ID, c.UpdatedAt)

	err := repository.db.QueryRow(context, query, chapter.ID, chapter.Title, chapter.IsPreview).Scan(&chapter.UpdatedAt)
	return dberr.Wrap(err, "update_chapter")
}

// Delete removes a chapter row.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	c := schema.Chapter
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, c.Table, c.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_chapter")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

/*
ApplyOrder writes the new chapter_index values in two phases.

# Phases
 1. Every chapter gets -(position+1), which cannot collide with any
    existing positive index.
 2. Every chapter gets position+1.

Both phases run in the same transaction, so readers never see the
placeholders and a failure leaves the previous order intact.
*/
func (repository *PostgresRepository) ApplyOrder(context context.Context, audiobookID string, ids []string) error {
	c := schema.Chapter
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = NOW() WHERE %s = $2 AND %s = $3`,
		c.Table, c.ChapterIndex, c.UpdatedAt, c.ID, c.AudiobookID)

	return postgres.InTx(context, repository.db, func(transaction pgx.Tx) error {

		// ── 1. Placeholders ──
		placeholders := &pgx.Batch{}
		for position, id := range ids {
			placeholders.Queue(query, -(position + 1), id, audiobookID)
		}
		if err := execOrderBatch(context, transaction, placeholders); err != nil {
			return err
		}

		// ── 2. Final indices ──
		final := &pgx.Batch{}
		for position, id := range ids {
			final.Queue(query, position+1, id, audiobookID)
		}
		return execOrderBatch(context, transaction, final)
	})
}

func execOrderBatch(context context.Context, transaction pgx.Tx, batch *pgx.Batch) error {
	results := transaction.SendBatch(context, batch)
	for range batch.Len() {
		cmd, err := results.Exec()
		if err != nil {
			_ = results.Close()
			return dberr.Wrap(err, "reorder_chapters")
		}
		if cmd.RowsAffected() == 0 {
			_ = results.Close()
			return dberr.ErrNotFound
		}
	}
	return dberr.Wrap(results.Close(), "reorder_chapters")
}

// RefreshStats recomputes the chapter count and total duration of an audiobook.
func (repository *PostgresRepository) RefreshStats(context context.Context, audiobookID string) error {
	a, c := schema.Audiobook, schema.Chapter
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = (SELECT COUNT(*) FROM %s WHERE %s = $1),
		    %s = (SELECT COALESCE(SUM(%s), 0) FROM %s WHERE %s = $1),
		    %s = NOW()
		WHERE %s = $1
	`,
		a.Table,
		a.ChapterCount, c.Table, c.AudiobookID,
		a.TotalDuration, c.DurationSeconds, c.Table, c.AudiobookID,
		a.UpdatedAt,
		a.ID,
	)

	_, err := repository.db.Exec(context, query, audiobookID)
	return dberr.Wrap(err, "refresh_chapter_stats")
}
