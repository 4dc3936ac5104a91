// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/navaadmin/internal/platform/ctxutil"
	"github.com/taibuivan/navaadmin/internal/platform/validate"
	"github.com/taibuivan/navaadmin/pkg/persian"
	"github.com/taibuivan/navaadmin/pkg/pointer"
	"github.com/taibuivan/navaadmin/pkg/slug"
)

const (
	maxNameLength = 100
	maxIconLength = 200
)

// Service orchestrates the business logic for one category kind.
type Service struct {
	repo Repository
	kind Kind
}

// NewService constructs a new [Service] bound to kind.
func NewService(repo Repository, kind Kind) *Service {
	return &Service{repo: repo, kind: kind}
}

// Kind reports which taxonomy this service manages.
func (service *Service) Kind() Kind {
	return service.kind
}

// List returns the categories matching filter in display order.
func (service *Service) List(context context.Context, filter Filter) ([]*Category, error) {
	filter.Query = persian.Normalize(filter.Query)
	return service.repo.List(context, filter)
}

// Get returns a single category by ID.
func (service *Service) Get(context context.Context, id string) (*Category, error) {
	return service.repo.Get(context, id)
}

/*
Create validates the input, derives a slug when none is given and appends the
category at the end of the current order.

Returns:
  - *Category: The stored category with its id and sort_order
  - error: VALIDATION_ERROR, or DUPLICATE when the slug is taken
*/
func (service *Service) Create(context context.Context, input Input) (*Category, error) {
	category := &Category{IsActive: true}
	applyInput(category, input)

	if category.Slug == "" {
		category.Slug = slug.Prefer(pointer.Val(category.NameEn), category.NameFa)
	}

	if err := validateCategory(category); err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, category); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).Info("category_created",
		slog.String("kind", string(service.kind)),
		slog.String("category_id", category.ID),
		slog.String("slug", category.Slug),
	)
	return category, nil
}

// Update applies the non-nil fields of input.
func (service *Service) Update(context context.Context, id string, input Input) (*Category, error) {
	category, err := service.repo.Get(context, id)
	if err != nil {
		return nil, err
	}

	applyInput(category, input)
	if err := validateCategory(category); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, category); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).Info("category_updated",
		slog.String("kind", string(service.kind)),
		slog.String("category_id", category.ID),
	)
	return category, nil
}

// SetActive shows or hides a category in the listener app.
func (service *Service) SetActive(context context.Context, id string, active bool) error {
	if err := service.repo.SetActive(context, id, active); err != nil {
		return err
	}

	ctxutil.GetLogger(context).Info("category_active_changed",
		slog.String("kind", string(service.kind)),
		slog.String("category_id", id),
		slog.Bool("is_active", active),
	)
	return nil
}

/*
Reorder stores the display order given as a list of ids.

The list must not be empty or contain duplicates. Categories missing from the
list are placed after the listed ones in their previous order.
*/
func (service *Service) Reorder(context context.Context, ids []string) error {
	validator := &validate.Validator{}
	validator.Custom(FieldIDs, len(ids) == 0, "At least one id is required")

	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		validator.UUID(FieldIDs, id)
		validator.Custom(FieldIDs, seen[id], "Duplicate id "+id)
		seen[id] = true
	}
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.Reorder(context, ids); err != nil {
		return err
	}

	ctxutil.GetLogger(context).Info("categories_reordered",
		slog.String("kind", string(service.kind)),
		slog.Int("count", len(ids)),
	)
	return nil
}

// Delete removes a category. Links to content items are removed by the
// database (ON DELETE CASCADE).
func (service *Service) Delete(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	ctxutil.GetLogger(context).Warn("category_deleted",
		slog.String("kind", string(service.kind)),
		slog.String("category_id", id),
	)
	return nil
}

// # Helpers

func applyInput(category *Category, input Input) {
	if input.NameFa != nil {
		category.NameFa = persian.Normalize(*input.NameFa)
	}
	if input.NameEn != nil {
		category.NameEn = pointer.NonEmpty(strings.TrimSpace(*input.NameEn))
	}
	if input.Slug != nil {
		category.Slug = strings.TrimSpace(*input.Slug)
	}
	if input.Icon != nil {
		category.Icon = pointer.NonEmpty(strings.TrimSpace(*input.Icon))
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
}

func validateCategory(category *Category) error {
	validator := &validate.Validator{}
	validator.Required(FieldNameFa, category.NameFa).MaxLen(FieldNameFa, category.NameFa, maxNameLength)
	validator.MaxLen(FieldNameEn, pointer.Val(category.NameEn), maxNameLength)
	validator.MaxLen(FieldIcon, pointer.Val(category.Icon), maxIconLength)

	if category.Slug == "" {
		validator.Custom(FieldSlug, true, "Could not derive a slug; provide name_en or slug")
	} else {
		validator.Slug(FieldSlug, category.Slug)
	}

	return validator.Err()
}
