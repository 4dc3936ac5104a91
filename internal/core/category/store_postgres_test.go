// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category_test

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/navaadmin/internal/core/category"
	"github.com/taibuivan/navaadmin/internal/platform/apperr"
)

const (
	firstID  = "0190a1b2-0000-7000-8000-000000000001"
	secondID = "0190a1b2-0000-7000-8000-000000000002"
)

func TestPostgresRepository_CreateAppendsSortOrder(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`(?s)INSERT INTO music_categories .*COALESCE\(MAX\(sort_order\), 0\) \+ 1 FROM music_categories`).
		WithArgs("پاپ", pgxmock.AnyArg(), "pop", pgxmock.AnyArg(), true).
		WillReturnRows(mock.NewRows([]string{"id", "sort_order", "created_at", "updated_at"}).AddRow(firstID, 4, now, now))

	repository := category.NewPostgresRepository(mock, category.KindMusic)
	created := &category.Category{NameFa: "پاپ", Slug: "pop", IsActive: true}

	require.NoError(t, repository.Create(context.Background(), created))
	assert.Equal(t, firstID, created.ID)
	assert.Equal(t, 4, created.SortOrder)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Reorder(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	batch := mock.ExpectBatch()
	batch.ExpectExec(`UPDATE categories SET sort_order`).WithArgs(1, secondID).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	batch.ExpectExec(`UPDATE categories SET sort_order`).WithArgs(2, firstID).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	batch.ExpectExec(`(?s)UPDATE categories SET sort_order = \$1 \+ ranked.rank_no.*<> ALL\(\$2::uuid\[\]\)`).
		WithArgs(2, []string{secondID, firstID}).
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))
	mock.ExpectCommit()

	repository := category.NewPostgresRepository(mock, category.KindGeneral)

	require.NoError(t, repository.Reorder(context.Background(), []string{secondID, firstID}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_ReorderUnknownID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	batch := mock.ExpectBatch()
	batch.ExpectExec(`UPDATE categories SET sort_order`).WithArgs(1, firstID).WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	batch.ExpectExec(`ranked.rank_no`).WithArgs(1, []string{firstID}).WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	repository := category.NewPostgresRepository(mock, category.KindGeneral)

	err = repository.Reorder(context.Background(), []string{firstID})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestPostgresRepository_DeleteMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM categories`).WithArgs(firstID).WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repository := category.NewPostgresRepository(mock, category.KindGeneral)
	err = repository.Delete(context.Background(), firstID)

	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
