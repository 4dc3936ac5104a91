// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter_test

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/navaadmin/internal/core/chapter"
	"github.com/taibuivan/navaadmin/internal/platform/apperr"
)

const (
	firstChapterID  = "0190a1b2-0000-7000-8000-000000000c01"
	secondChapterID = "0190a1b2-0000-7000-8000-000000000c02"
	thirdChapterID  = "0190a1b2-0000-7000-8000-000000000c03"
)

const orderStatement = `UPDATE chapters SET chapter_index = \$1, updated_at = NOW\(\) WHERE id = \$2 AND audiobook_id = \$3`

/*
TestPostgresRepository_ApplyOrderTwoPhase verifies that every chapter first
receives a negative placeholder and only then its final index, all inside a
single transaction.
*/
func TestPostgresRepository_ApplyOrderTwoPhase(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	ids := []string{thirdChapterID, firstChapterID, secondChapterID}

	mock.ExpectBegin()
	placeholders := mock.ExpectBatch()
	for position, id := range ids {
		placeholders.ExpectExec(orderStatement).WithArgs(-(position + 1), id, audiobookID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	}
	final := mock.ExpectBatch()
	for position, id := range ids {
		final.ExpectExec(orderStatement).WithArgs(position+1, id, audiobookID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	}
	mock.ExpectCommit()

	repository := chapter.NewPostgresRepository(mock)

	require.NoError(t, repository.ApplyOrder(context.Background(), audiobookID, ids))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_ApplyOrderForeignChapterRollsBack(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	placeholders := mock.ExpectBatch()
	placeholders.ExpectExec(orderStatement).WithArgs(-1, firstChapterID, audiobookID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	repository := chapter.NewPostgresRepository(mock)
	err = repository.ApplyOrder(context.Background(), audiobookID, []string{firstChapterID})

	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_CreateAppendsIndex(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`(?s)INSERT INTO chapters .*COALESCE\(MAX\(chapter_index\), 0\) \+ 1 FROM chapters WHERE audiobook_id = \$1`).
		WithArgs(audiobookID, "فصل اول", audiobookID+"/x.mp3", 61, int64(2048), false).
		WillReturnRows(mock.NewRows([]string{"id", "chapter_index", "created_at", "updated_at"}).AddRow(firstChapterID, 4, now, now))

	created := &chapter.Chapter{
		AudiobookID: audiobookID, Title: "فصل اول", AudioPath: audiobookID + "/x.mp3",
		DurationSeconds: 61, FileSize: 2048,
	}
	require.NoError(t, chapter.NewPostgresRepository(mock).Create(context.Background(), created))

	assert.Equal(t, firstChapterID, created.ID)
	assert.Equal(t, 4, created.ChapterIndex)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_EnsureAudiobookMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT EXISTS`).WithArgs(audiobookID).
		WillReturnRows(mock.NewRows([]string{"exists"}).AddRow(false))

	err = chapter.NewPostgresRepository(mock).EnsureAudiobook(context.Background(), audiobookID)

	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
