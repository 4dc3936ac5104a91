// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"log/slog"

	"github.com/taibuivan/navaadmin/internal/platform/ctxutil"
	"github.com/taibuivan/navaadmin/internal/platform/validate"
)

// Service orchestrates review moderation.
type Service struct {
	repo Repository
}

// NewService constructs a new [Service] with its required repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns one page of reviews matching filter, plus the total count.
func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*Review, int, error) {
	validator := &validate.Validator{}
	if filter.Status != "" {
		validator.OneOf(FieldStatus, filter.Status, Statuses...)
	}
	if filter.AudiobookID != "" {
		validator.UUID(FieldAudiobookID, filter.AudiobookID)
	}
	if filter.Rating != 0 {
		validator.Range(FieldRating, filter.Rating, 1, 5)
	}
	if err := validator.Err(); err != nil {
		return nil, 0, err
	}
	return service.repo.List(context, filter, limit, offset)
}

// Get returns a single review by ID.
func (service *Service) Get(context context.Context, id string) (*Review, error) {
	return service.repo.Get(context, id)
}

// Approve publishes a review.
func (service *Service) Approve(context context.Context, id string) error {
	return service.setStatus(context, id, StatusApproved)
}

// Reject hides a review without deleting it.
func (service *Service) Reject(context context.Context, id string) error {
	return service.setStatus(context, id, StatusRejected)
}

func (service *Service) setStatus(context context.Context, id string, status Status) error {
	if err := service.repo.SetStatus(context, id, status); err != nil {
		return err
	}

	ctxutil.GetLogger(context).Info("review_moderated",
		slog.String("review_id", id),
		slog.String("status", string(status)),
	)
	return nil
}

// Delete removes a review permanently.
func (service *Service) Delete(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	ctxutil.GetLogger(context).Warn("review_deleted", slog.String("review_id", id))
	return nil
}
