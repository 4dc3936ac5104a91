// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/navaadmin/internal/core/content"
	"github.com/taibuivan/navaadmin/internal/platform/apperr"
)

const secondCreatorID = "0190a1b2-0000-7000-8000-0000000000c2"

func TestPostgresRepository_ReplaceCreators(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	batch := mock.ExpectBatch()
	batch.ExpectExec(`DELETE FROM audiobook_creators WHERE audiobook_id`).WithArgs(audiobookID).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))
	batch.ExpectExec(`INSERT INTO audiobook_creators`).WithArgs(audiobookID, creatorID, "author", 1).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	batch.ExpectExec(`INSERT INTO audiobook_creators`).WithArgs(audiobookID, secondCreatorID, "narrator", 2).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	repository := content.NewPostgresRepository(mock)
	err = repository.ReplaceCreators(context.Background(), audiobookID, []content.CreatorCredit{
		{CreatorID: creatorID, Role: "author", SortOrder: 1},
		{CreatorID: secondCreatorID, Role: "narrator", SortOrder: 2},
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_ReplaceCategoriesRollsBack(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	batch := mock.ExpectBatch()
	batch.ExpectExec(`DELETE FROM audiobook_music_categories`).WithArgs(audiobookID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	batch.ExpectExec(`INSERT INTO audiobook_music_categories \(audiobook_id, music_category_id\)`).WithArgs(audiobookID, creatorID).
		WillReturnError(&pgconn.PgError{Code: "23503"})
	mock.ExpectRollback()

	repository := content.NewPostgresRepository(mock)
	err = repository.ReplaceCategories(context.Background(), audiobookID, true, []string{creatorID})

	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_UpdateStatusLostRace(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`(?s)UPDATE audiobooks.*WHERE id = \$1 AND status = \$2`).
		WithArgs(audiobookID, content.StatusSubmitted, content.StatusUnderReview, pgxmock.AnyArg(), false, false, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repository := content.NewPostgresRepository(mock)
	err = repository.UpdateStatus(context.Background(), audiobookID, content.StatusSubmitted, content.StatusChange{To: content.StatusUnderReview})

	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_ChapterAudioPaths(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT audio_path FROM chapters WHERE audiobook_id = \$1`).WithArgs(audiobookID).
		WillReturnRows(mock.NewRows([]string{"audio_path"}).AddRow("a/1.mp3").AddRow("a/2.mp3"))

	paths, err := content.NewPostgresRepository(mock).ChapterAudioPaths(context.Background(), audiobookID)

	require.NoError(t, err)
	assert.Equal(t, []string{"a/1.mp3", "a/2.mp3"}, paths)
	assert.NoError(t, mock.ExpectationsWereMet())
}
