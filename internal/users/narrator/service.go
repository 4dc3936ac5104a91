// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package narrator

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/navaadmin/internal/platform/apperr"
	"github.com/taibuivan/navaadmin/internal/platform/ctxutil"
	"github.com/taibuivan/navaadmin/internal/platform/storage"
	"github.com/taibuivan/navaadmin/internal/platform/validate"
	"github.com/taibuivan/navaadmin/pkg/pointer"
)

const maxNoteLength = 2000

// Service orchestrates the review of narrator requests.
type Service struct {
	repo        Repository
	invalidator AccessInvalidator
	store       storage.Store
	bucket      string
	signedTTL   time.Duration
}

/*
NewService wires the narrator request service.

Parameters:
  - repo: Repository
  - invalidator: AccessInvalidator (the profile service) refreshed after a promotion
  - store: storage.Store holding the sample recordings
  - bucket: string (bucket of the sample recordings)
  - signedTTL: time.Duration
*/
func NewService(repo Repository, invalidator AccessInvalidator, store storage.Store, bucket string, signedTTL time.Duration) *Service {
	return &Service{repo: repo, invalidator: invalidator, store: store, bucket: bucket, signedTTL: signedTTL}
}

// List returns one page of requests, optionally filtered by status.
func (service *Service) List(context context.Context, status string, limit, offset int) ([]*Request, int, error) {
	if status != "" {
		validator := &validate.Validator{}
		if err := validator.OneOf(FieldStatus, status, Statuses...).Err(); err != nil {
			return nil, 0, err
		}
	}
	return service.repo.List(context, status, limit, offset)
}

// Get returns a single request by ID.
func (service *Service) Get(context context.Context, id string) (*Request, error) {
	return service.repo.Get(context, id)
}

// SampleURL returns a signed URL of the sample recording attached to a request.
func (service *Service) SampleURL(context context.Context, id string) (string, error) {
	request, err := service.repo.Get(context, id)
	if err != nil {
		return "", err
	}
	if pointer.Val(request.SampleAudioPath) == "" {
		return "", apperr.NotFound("Sample recording")
	}

	signed, err := service.store.SignedURL(context, service.bucket, *request.SampleAudioPath, service.signedTTL)
	if err != nil {
		return "", apperr.Storage(err)
	}
	return signed, nil
}

/*
Approve accepts a pending request and makes the user a narrator.

The cached role of the user is dropped afterwards so the new role applies on
their next request.
*/
func (service *Service) Approve(context context.Context, id, note string) error {
	note = strings.TrimSpace(note)
	validator := &validate.Validator{}
	if err := validator.MaxLen(FieldNote, note, maxNoteLength).Err(); err != nil {
		return err
	}

	userID, err := service.repo.Approve(context, id, service.decision(context, note))
	if err != nil {
		return err
	}

	service.invalidator.Invalidate(context, userID)

	ctxutil.GetLogger(context).Info("narrator_request_approved",
		slog.String("request_id", id),
		slog.String("user_id", userID),
	)
	return nil
}

// Reject declines a pending request. The note is shown to the requester and is required.
func (service *Service) Reject(context context.Context, id, note string) error {
	note = strings.TrimSpace(note)
	validator := &validate.Validator{}
	if err := validator.Required(FieldNote, note).MaxLen(FieldNote, note, maxNoteLength).Err(); err != nil {
		return err
	}

	if err := service.repo.Reject(context, id, service.decision(context, note)); err != nil {
		return err
	}

	ctxutil.GetLogger(context).Info("narrator_request_rejected", slog.String("request_id", id))
	return nil
}

func (service *Service) decision(context context.Context, note string) Decision {
	return Decision{
		ReviewerID: pointer.NonEmpty(ctxutil.GetActorID(context)),
		Note:       pointer.NonEmpty(note),
	}
}
