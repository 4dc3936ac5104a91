// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/navaadmin/internal/core/category"
	"github.com/taibuivan/navaadmin/internal/platform/apperr"
	"github.com/taibuivan/navaadmin/internal/platform/dberr"
	"github.com/taibuivan/navaadmin/pkg/pointer"
)

type fakeRepository struct {
	stored    map[string]*category.Category
	reordered []string
	createErr error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{stored: map[string]*category.Category{}}
}

func (repo *fakeRepository) List(_ context.Context, _ category.Filter) ([]*category.Category, error) {
	var result []*category.Category
	for _, c := range repo.stored {
		result = append(result, c)
	}
	return result, nil
}

func (repo *fakeRepository) Get(_ context.Context, id string) (*category.Category, error) {
	c, ok := repo.stored[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (repo *fakeRepository) Create(_ context.Context, c *category.Category) error {
	if repo.createErr != nil {
		return repo.createErr
	}
	c.ID = firstID
	c.SortOrder = len(repo.stored) + 1
	repo.stored[c.ID] = c
	return nil
}

func (repo *fakeRepository) Update(_ context.Context, c *category.Category) error {
	repo.stored[c.ID] = c
	return nil
}

func (repo *fakeRepository) SetActive(_ context.Context, id string, active bool) error {
	c, ok := repo.stored[id]
	if !ok {
		return dberr.ErrNotFound
	}
	c.IsActive = active
	return nil
}

func (repo *fakeRepository) Reorder(_ context.Context, ids []string) error {
	repo.reordered = ids
	return nil
}

func (repo *fakeRepository) Delete(_ context.Context, id string) error {
	delete(repo.stored, id)
	return nil
}

func TestService_CreateDerivesSlug(t *testing.T) {
	repo := newFakeRepository()
	service := category.NewService(repo, category.KindGeneral)

	created, err := service.Create(context.Background(), category.Input{
		NameFa: pointer.To(" رمان "),
		NameEn: pointer.To("Novels & Stories"),
	})

	require.NoError(t, err)
	assert.Equal(t, "رمان", created.NameFa)
	assert.Equal(t, "novels-and-stories", created.Slug)
	assert.True(t, created.IsActive)
	assert.Equal(t, 1, created.SortOrder)
}

func TestService_CreateValidation(t *testing.T) {
	service := category.NewService(newFakeRepository(), category.KindGeneral)

	_, err := service.Create(context.Background(), category.Input{NameEn: pointer.To("Novels")})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	_, err = service.Create(context.Background(), category.Input{NameFa: pointer.To("رمان"), Slug: pointer.To("Not A Slug")})
	require.Error(t, err)
}

func TestService_CreateDuplicate(t *testing.T) {
	repo := newFakeRepository()
	repo.createErr = dberr.Wrap(&pgconn.PgError{Code: "23505"}, "create_category")
	service := category.NewService(repo, category.KindMusic)

	_, err := service.Create(context.Background(), category.Input{NameFa: pointer.To("پاپ"), NameEn: pointer.To("Pop")})

	require.Error(t, err)
	assert.Equal(t, apperr.CodeDuplicate, apperr.As(err).Code)
}

func TestService_UpdateKeepsUnsetFields(t *testing.T) {
	repo := newFakeRepository()
	repo.stored[firstID] = &category.Category{ID: firstID, NameFa: "رمان", Slug: "novels", IsActive: true, Icon: pointer.To("book")}
	service := category.NewService(repo, category.KindGeneral)

	updated, err := service.Update(context.Background(), firstID, category.Input{IsActive: pointer.To(false)})

	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "novels", updated.Slug)
	assert.Equal(t, "book", pointer.Val(updated.Icon))
}

func TestService_Reorder(t *testing.T) {
	repo := newFakeRepository()
	service := category.NewService(repo, category.KindGeneral)
	ctx := context.Background()

	require.NoError(t, service.Reorder(ctx, []string{secondID, firstID}))
	assert.Equal(t, []string{secondID, firstID}, repo.reordered)

	assert.Error(t, service.Reorder(ctx, nil))
	assert.Error(t, service.Reorder(ctx, []string{firstID, firstID}))
	assert.Error(t, service.Reorder(ctx, []string{"not-a-uuid"}))
}
