// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package creator

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/navaadmin/internal/platform/apperr"
	"github.com/taibuivan/navaadmin/internal/platform/ctxutil"
	"github.com/taibuivan/navaadmin/internal/platform/dberr"
	"github.com/taibuivan/navaadmin/internal/platform/storage"
	"github.com/taibuivan/navaadmin/internal/platform/validate"
	"github.com/taibuivan/navaadmin/pkg/persian"
	"github.com/taibuivan/navaadmin/pkg/pointer"
	"github.com/taibuivan/navaadmin/pkg/slug"
	"github.com/taibuivan/navaadmin/pkg/uuidv7"
)

const (
	maxNameLength   = 150
	maxBioLength    = 4000
	maxAvatarBytes  = 5 << 20
	avatarKeyPrefix = "creators"
)

// Service orchestrates the business logic for creators.
type Service struct {
	repo    Repository
	store   storage.Store
	janitor *storage.Janitor
	bucket  string
}

// NewService wires the repository and the profile-images bucket used for avatars.
func NewService(repo Repository, store storage.Store, janitor *storage.Janitor, bucket string) *Service {
	return &Service{repo: repo, store: store, janitor: janitor, bucket: bucket}
}

// List returns one page of creators matching filter, plus the total count.
func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*Creator, int, error) {
	filter.Query = persian.Normalize(filter.Query)
	if filter.Type != "" {
		validator := &validate.Validator{}
		if err := validator.OneOf(FieldCreatorType, filter.Type, Types...).Err(); err != nil {
			return nil, 0, err
		}
	}
	return service.repo.List(context, filter, limit, offset)
}

// Get returns a single creator by ID.
func (service *Service) Get(context context.Context, id string) (*Creator, error) {
	return service.repo.Get(context, id)
}

/*
Create stores a new creator.

The slug comes from the Latin name when present. When it collides with an
existing creator (two narrators with the same name are common) a short
suffix is appended and the insert is retried once.
*/
func (service *Service) Create(context context.Context, input Input) (*Creator, error) {
	creator := &Creator{}
	applyInput(creator, input)

	if err := validateCreator(creator); err != nil {
		return nil, err
	}

	creator.Slug = slug.Prefer(pointer.Val(creator.DisplayNameLatin), creator.DisplayName)
	if creator.Slug == "" {
		creator.Slug = string(creator.CreatorType)
	}

	err := service.repo.Create(context, creator)
	if err != nil && dberr.IsUniqueViolation(err) {
		id := uuidv7.New()
		creator.Slug = slug.WithSuffix(creator.Slug, id[len(id)-6:])
		err = service.repo.Create(context, creator)
	}
	if err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).Info("creator_created",
		slog.String("creator_id", creator.ID),
		slog.String("creator_type", string(creator.CreatorType)),
	)
	return creator, nil
}

// Update applies the non-nil fields of input to a creator.
func (service *Service) Update(context context.Context, id string, input Input) (*Creator, error) {
	creator, err := service.repo.Get(context, id)
	if err != nil {
		return nil, err
	}

	applyInput(creator, input)
	if err := validateCreator(creator); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, creator); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).Info("creator_updated", slog.String("creator_id", id))
	return creator, nil
}

/*
UploadAvatar replaces the avatar of a creator.

# Flow
 1. Upload the new image to profile-images/creators/.
 2. Point the row at the new public URL.
 3. Row update failed: discard the new object (it is an orphan).
 4. Row update succeeded: discard the previous avatar object.
*/
func (service *Service) UploadAvatar(context context.Context, id string, file storage.File) (*Creator, error) {
	validator := &validate.Validator{}
	validator.Custom(FieldAvatar, !storage.HasPrefix(file.ContentType, "image/"), "Must be an image")
	validator.Custom(FieldAvatar, file.Size > maxAvatarBytes, "Must be at most 5 MB")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	creator, err := service.repo.Get(context, id)
	if err != nil {
		return nil, err
	}
	previous := pointer.Val(creator.AvatarURL)

	objectPath, err := storage.Put(context, service.store, service.bucket, avatarKeyPrefix, file)
	if err != nil {
		return nil, err
	}

	avatarURL := service.store.PublicURL(service.bucket, objectPath)
	if err := service.repo.SetAvatar(context, id, &avatarURL); err != nil {
		service.janitor.Discard(context, service.bucket, objectPath)
		return nil, err
	}

	if oldPath, ok := storage.PathFromPublicURL(service.bucket, previous); ok {
		service.janitor.Discard(context, service.bucket, oldPath)
	}

	creator.AvatarURL = &avatarURL
	ctxutil.GetLogger(context).Info("creator_avatar_uploaded",
		slog.String("creator_id", id),
		slog.String("path", objectPath),
	)
	return creator, nil
}

// Delete removes the creator, then its avatar object. Creators still credited
// on content items cannot be deleted (foreign key conflict).
func (service *Service) Delete(context context.Context, id string) error {
	creator, err := service.repo.Get(context, id)
	if err != nil {
		return err
	}

	if err := service.repo.Delete(context, id); err != nil {
		if ae := apperr.As(err); ae != nil && ae.Code == "CONFLICT" {
			return apperr.Conflict("Creator is still credited on content items")
		}
		return err
	}

	if avatarPath, ok := storage.PathFromPublicURL(service.bucket, pointer.Val(creator.AvatarURL)); ok {
		service.janitor.Discard(context, service.bucket, avatarPath)
	}

	ctxutil.GetLogger(context).Warn("creator_deleted", slog.String("creator_id", id))
	return nil
}

// # Helpers

func applyInput(creator *Creator, input Input) {
	if input.DisplayName != nil {
		creator.DisplayName = persian.Normalize(*input.DisplayName)
	}
	if input.DisplayNameLatin != nil {
		creator.DisplayNameLatin = pointer.NonEmpty(strings.TrimSpace(*input.DisplayNameLatin))
	}
	if input.CreatorType != nil {
		creator.CreatorType = Type(strings.TrimSpace(*input.CreatorType))
	}
	if input.Bio != nil {
		creator.Bio = pointer.NonEmpty(strings.TrimSpace(*input.Bio))
	}
}

func validateCreator(creator *Creator) error {
	validator := &validate.Validator{}
	validator.Required(FieldDisplayName, creator.DisplayName).MaxLen(FieldDisplayName, creator.DisplayName, maxNameLength)
	validator.MaxLen(FieldDisplayNameLatin, pointer.Val(creator.DisplayNameLatin), maxNameLength)
	validator.OneOf(FieldCreatorType, string(creator.CreatorType), Types...)
	validator.MaxLen(FieldBio, pointer.Val(creator.Bio), maxBioLength)
	return validator.Err()
}
