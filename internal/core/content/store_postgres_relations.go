// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/navaadmin/internal/platform/database/schema"
	"github.com/taibuivan/navaadmin/internal/platform/dberr"
	"github.com/taibuivan/navaadmin/internal/platform/postgres"
)

// # Detail

/*
GetDetail loads an audiobook with its creators, categories and the metadata
row matching its content type.
*/
func (repository *PostgresRepository) GetDetail(context context.Context, id string) (*Detail, error) {
	audiobook, err := repository.Get(context, id)
	if err != nil {
		return nil, err
	}
	detail := &Detail{Audiobook: audiobook}

	if detail.Creators, err = repository.listCreators(context, id); err != nil {
		return nil, err
	}
	if detail.Categories, err = repository.listCategories(context, id, audiobook.ContentType == TypeMusic); err != nil {
		return nil, err
	}

	switch audiobook.ContentType {
	case TypeBook:
		detail.BookMetadata, err = repository.getBookMetadata(context, id)
	case TypeMusic:
		detail.MusicMetadata, err = repository.getMusicMetadata(context, id)
	}
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func (repository *PostgresRepository) listCreators(context context.Context, id string) ([]CreatorCredit, error) {
	link, creator := schema.AudiobookCreator, schema.Creator
	query := fmt.Sprintf(`
		SELECT l.%s, c.%s, l.%s, l.%s
		FROM %s l
		JOIN %s c ON c.%s = l.%s
		WHERE l.%s = $1
		ORDER BY l.%s ASC
	`,
		link.CreatorID, creator.DisplayName, link.Role, link.SortOrder,
		link.Table,
		creator.Table, creator.ID, link.CreatorID,
		link.AudiobookID,
		link.SortOrder,
	)

	rows, err := repository.db.Query(context, query, id)
	if err != nil {
		return nil, dberr.Wrap(err, "list_audiobook_creators")
	}
	defer rows.Close()

	credits := []CreatorCredit{}
	for rows.Next() {
		var credit CreatorCredit
		if err := rows.Scan(&credit.CreatorID, &credit.DisplayName, &credit.Role, &credit.SortOrder); err != nil {
			return nil, dberr.Wrap(err, "scan_audiobook_creator")
		}
		credits = append(credits, credit)
	}
	return credits, dberr.Wrap(rows.Err(), "list_audiobook_creators")
}

func (repository *PostgresRepository) listCategories(context context.Context, id string, musical bool) ([]CategoryRef, error) {
	linkTable, linkAudiobook, linkCategory := categoryLink(musical)
	categoryTable := schema.Category
	if musical {
		categoryTable = schema.MusicCategory
	}

	query := fmt.Sprintf(`
		SELECT c.%s, c.%s
		FROM %s l
		JOIN %s c ON c.%s = l.%s
		WHERE l.%s = $1
		ORDER BY c.%s ASC
	`,
		categoryTable.ID, categoryTable.NameFa,
		linkTable,
		categoryTable.Table, categoryTable.ID, linkCategory,
		linkAudiobook,
		categoryTable.SortOrder,
	)

	rows, err := repository.db.Query(context, query, id)
	if err != nil {
		return nil, dberr.Wrap(err, "list_audiobook_categories")
	}
	defer rows.Close()

	refs := []CategoryRef{}
	for rows.Next() {
		var ref CategoryRef
		if err := rows.Scan(&ref.ID, &ref.NameFa); err != nil {
			return nil, dberr.Wrap(err, "scan_audiobook_category")
		}
		refs = append(refs, ref)
	}
	return refs, dberr.Wrap(rows.Err(), "list_audiobook_categories")
}

func categoryLink(musical bool) (table, audiobookID, categoryID string) {
	if musical {
		l := schema.AudiobookMusicCategory
		return l.Table, l.AudiobookID, l.CategoryID
	}
	l := schema.AudiobookCategory
	return l.Table, l.AudiobookID, l.CategoryID
}

// # Relations

/*
ReplaceCreators swaps the creator credits of an audiobook in one transaction.

The delete and the inserts share a batch; an unknown creator id fails the
insert with a foreign key violation and nothing is changed.
*/
func (repository *PostgresRepository) ReplaceCreators(context context.Context, id string, credits []CreatorCredit) error {
	l := schema.AudiobookCreator
	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, l.Table, l.AudiobookID)
	insertQuery := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4)`, l.Table, schema.List(l.Columns()...))

	return postgres.InTx(context, repository.db, func(transaction pgx.Tx) error {
		batch := &pgx.Batch{}
		batch.Queue(deleteQuery, id)
		for _, credit := range credits {
			batch.Queue(insertQuery, id, credit.CreatorID, credit.Role, credit.SortOrder)
		}
		return execBatch(context, transaction, batch, "replace_audiobook_creators")
	})
}

// ReplaceCategories swaps the category links. Music items link to music categories.
func (repository *PostgresRepository) ReplaceCategories(context context.Context, id string, musical bool, categoryIDs []string) error {
	table, audiobookColumn, categoryColumn := categoryLink(musical)
	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table, audiobookColumn)
	insertQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`, table, audiobookColumn, categoryColumn)

	return postgres.InTx(context, repository.db, func(transaction pgx.Tx) error {
		batch := &pgx.Batch{}
		batch.Queue(deleteQuery, id)
		for _, categoryID := range categoryIDs {
			batch.Queue(insertQuery, id, categoryID)
		}
		return execBatch(context, transaction, batch, "replace_audiobook_categories")
	})
}

func execBatch(context context.Context, transaction pgx.Tx, batch *pgx.Batch, action string) error {
	results := transaction.SendBatch(context, batch)
	for range batch.Len() {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return dberr.Wrap(err, action)
		}
	}
	return dberr.Wrap(results.Close(), action)
}

// # Metadata

func (repository *PostgresRepository) getBookMetadata(context context.Context, id string) (*BookMetadata, error) {
	m := schema.BookMetadata
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.List(m.ISBN, m.Publisher, m.PublishYear, m.PageCount, m.Language), m.Table, m.AudiobookID)

	metadata := &BookMetadata{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&metadata.ISBN, &metadata.Publisher, &metadata.PublishYear, &metadata.PageCount, &metadata.Language,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Wrap(err, "get_book_metadata")
	}
	return metadata, nil
}

func (repository *PostgresRepository) getMusicMetadata(context context.Context, id string) (*MusicMetadata, error) {
	m := schema.MusicMetadata
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.List(m.AlbumName, m.Genre, m.ReleaseYear, m.Label, m.Lyrics), m.Table, m.AudiobookID)

	metadata := &MusicMetadata{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&metadata.AlbumName, &metadata.Genre, &metadata.ReleaseYear, &metadata.Label, &metadata.Lyrics,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Wrap(err, "get_music_metadata")
	}
	return metadata, nil
}

// UpsertBookMetadata inserts or replaces the book metadata row of an item.
func (repository *PostgresRepository) UpsertBookMetadata(context context.Context, id string, metadata *BookMetadata) error {
	m := schema.BookMetadata
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (%s) DO UPDATE
		SET %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s,
		    %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = NOW()
	`,
		m.Table, m.AudiobookID, m.ISBN, m.Publisher, m.PublishYear, m.PageCount, m.Language,
		m.AudiobookID,
		m.ISBN, m.ISBN, m.Publisher, m.Publisher, m.PublishYear, m.PublishYear,
		m.PageCount, m.PageCount, m.Language, m.Language, m.UpdatedAt,
	)

	_, err := repository.db.Exec(context, query,
		id, metadata.ISBN, metadata.Publisher, metadata.PublishYear, metadata.PageCount, metadata.Language,
	)
	return dberr.Wrap(err, "upsert_book_metadata")
}

// UpsertMusicMetadata inserts or replaces the music metadata row of an item.
func (repository *PostgresRepository) UpsertMusicMetadata(context context.Context, id string, metadata *MusicMetadata) error {
	m := schema.MusicMetadata
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (%s) DO UPDATE
		SET %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s,
		    %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = NOW()
	`,
		m.Table, m.AudiobookID, m.AlbumName, m.Genre, m.ReleaseYear, m.Label, m.Lyrics,
		m.AudiobookID,
		m.AlbumName, m.AlbumName, m.Genre, m.Genre, m.ReleaseYear, m.ReleaseYear,
		m.Label, m.Label, m.Lyrics, m.Lyrics, m.UpdatedAt,
	)

	_, err := repository.db.Exec(context, query,
		id, metadata.AlbumName, metadata.Genre, metadata.ReleaseYear, metadata.Label, metadata.Lyrics,
	)
	return dberr.Wrap(err, "upsert_music_metadata")
}
