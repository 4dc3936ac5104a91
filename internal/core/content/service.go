// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/navaadmin/internal/core/creator"
	"github.com/taibuivan/navaadmin/internal/platform/apperr"
	"github.com/taibuivan/navaadmin/internal/platform/ctxutil"
	"github.com/taibuivan/navaadmin/internal/platform/storage"
	"github.com/taibuivan/navaadmin/internal/platform/validate"
	"github.com/taibuivan/navaadmin/pkg/persian"
	"github.com/taibuivan/navaadmin/pkg/pointer"
)

const (
	maxTitleLength       = 300
	maxDescriptionLength = 10000
	maxRejectionLength   = 1000
	maxCoverBytes        = 10 << 20
	maxEbookBytes        = 200 << 20
	maxCredits           = 50
	maxCategories        = 20
	minYear              = 1000
	maxYear              = 2100
)

var ebookContentTypes = []string{"application/pdf", "application/epub+zip"}

// Service orchestrates the business logic for content items.
type Service struct {
	repo      Repository
	store     storage.Store
	janitor   *storage.Janitor
	buckets   storage.Buckets
	signedTTL time.Duration
}

/*
NewService wires the content service.

Parameters:
  - repo: Repository
  - store: storage.Store holding covers, ebooks and chapter audio
  - janitor: *storage.Janitor for best-effort object removal
  - buckets: storage.Buckets
  - signedTTL: time.Duration (lifetime of signed ebook URLs)
*/
func NewService(repo Repository, store storage.Store, janitor *storage.Janitor, buckets storage.Buckets, signedTTL time.Duration) *Service {
	return &Service{repo: repo, store: store, janitor: janitor, buckets: buckets, signedTTL: signedTTL}
}

// # Queries

// List returns one page of content items matching filter, plus the total count.
func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*Audiobook, int, error) {
	validator := &validate.Validator{}
	for _, status := range filter.Statuses {
		validator.OneOf(FieldStatus, status, Statuses...)
	}
	if filter.ContentType != "" {
		validator.OneOf(FieldContentType, filter.ContentType, Types...)
	}
	if err := validator.Err(); err != nil {
		return nil, 0, err
	}

	filter.Query = persian.Normalize(filter.Query)
	return service.repo.List(context, filter, limit, offset)
}

// Get returns an item with its credits, categories and type metadata.
func (service *Service) Get(context context.Context, id string) (*Detail, error) {
	return service.repo.GetDetail(context, id)
}

// # Lifecycle

// Create stores a new item in status draft.
func (service *Service) Create(context context.Context, input Input) (*Audiobook, error) {
	audiobook := &Audiobook{Status: StatusDraft}
	applyInput(audiobook, input)

	if err := validateAudiobook(audiobook); err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, audiobook); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).Info("audiobook_created",
		slog.String("audiobook_id", audiobook.ID),
		slog.String("content_type", string(audiobook.ContentType)),
	)
	return audiobook, nil
}

/*
Update applies the non-nil fields of input.

The content type decides which category table and metadata table apply, so it
can only change while the item is still a draft.
*/
func (service *Service) Update(context context.Context, id string, input Input) (*Audiobook, error) {
	audiobook, err := service.repo.Get(context, id)
	if err != nil {
		return nil, err
	}

	previousType := audiobook.ContentType
	applyInput(audiobook, input)

	validator := &validate.Validator{}
	validator.Custom(FieldContentType, audiobook.ContentType != previousType && audiobook.Status != StatusDraft,
		"Content type can only change while the item is a draft")
	if err := validator.Err(); err != nil {
		return nil, err
	}
	if err := validateAudiobook(audiobook); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, audiobook); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).Info("audiobook_updated", slog.String("audiobook_id", id))
	return audiobook, nil
}

/*
Transition moves an item through the approval workflow.

# Rules
  - Only the moves listed in [CanTransition] are accepted.
  - Rejecting requires a reason; approving clears the previous one.
  - submitted_at is stamped on submit; reviewed_at and reviewed_by on approve
    and reject.

Returns:
  - *Audiobook: The item in its new status
  - error: VALIDATION_ERROR for illegal moves, CONFLICT when another admin
    changed the status first
*/
func (service *Service) Transition(context context.Context, id string, input TransitionInput) (*Audiobook, error) {
	audiobook, err := service.repo.Get(context, id)
	if err != nil {
		return nil, err
	}

	from, to := audiobook.Status, input.Status
	reason := strings.TrimSpace(input.Reason)

	validator := &validate.Validator{}
	validator.OneOf(FieldStatus, string(to), Statuses...)
	if !validator.HasErrors() {
		validator.Custom(FieldStatus, !CanTransition(from, to), fmt.Sprintf("Cannot move from %s to %s", from, to))
	}
	if to == StatusRejected {
		validator.Required(FieldReason, reason).MaxLen(FieldReason, reason, maxRejectionLength)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	change := StatusChange{
		To:              to,
		RejectionReason: audiobook.RejectionReason,
		MarkSubmitted:   to == StatusSubmitted,
		MarkReviewed:    to == StatusApproved || to == StatusRejected,
	}
	switch to {
	case StatusRejected:
		change.RejectionReason = &reason
	case StatusApproved:
		change.RejectionReason = nil
	}
	if change.MarkReviewed {
		change.ReviewedBy = pointer.NonEmpty(ctxutil.GetActorID(context))
	}

	if err := service.repo.UpdateStatus(context, id, from, change); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).Info("audiobook_status_changed",
		slog.String("audiobook_id", id),
		slog.String("from", string(from)),
		slog.String("to", string(to)),
	)
	return service.repo.Get(context, id)
}

// SetFlags changes price and promotion flags. A free item always costs 0.
func (service *Service) SetFlags(context context.Context, id string, input FlagsInput) (*Audiobook, error) {
	audiobook, err := service.repo.Get(context, id)
	if err != nil {
		return nil, err
	}

	if input.Price != nil {
		audiobook.Price = *input.Price
	}
	if input.IsFree != nil {
		audiobook.IsFree = *input.IsFree
	}
	if input.IsFeatured != nil {
		audiobook.IsFeatured = *input.IsFeatured
	}
	if input.IsBrand != nil {
		audiobook.IsBrand = *input.IsBrand
	}
	if audiobook.IsFree {
		audiobook.Price = 0
	}

	validator := &validate.Validator{}
	if err := validator.NonNegative(FieldPrice, audiobook.Price).Err(); err != nil {
		return nil, err
	}

	if err := service.repo.SetFlags(context, audiobook); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).Info("audiobook_flags_changed",
		slog.String("audiobook_id", id),
		slog.Bool("is_free", audiobook.IsFree),
		slog.Bool("is_featured", audiobook.IsFeatured),
		slog.Bool("is_brand", audiobook.IsBrand),
	)
	return audiobook, nil
}

/*
Delete removes an item and then its objects.

# Flow
 1. Collect the cover, ebook and chapter audio paths.
 2. Delete the row (chapters, links and metadata cascade).
 3. Discard the objects best-effort; failures are queued for the sweeper.
*/
func (service *Service) Delete(context context.Context, id string) error {
	audiobook, err := service.repo.Get(context, id)
	if err != nil {
		return err
	}

	audioPaths, err := service.repo.ChapterAudioPaths(context, id)
	if err != nil {
		return err
	}

	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	if coverPath, ok := storage.PathFromPublicURL(service.buckets.Covers, pointer.Val(audiobook.CoverURL)); ok {
		service.janitor.Discard(context, service.buckets.Covers, coverPath)
	}
	service.janitor.Discard(context, service.buckets.Ebooks, pointer.Val(audiobook.EbookPath))
	service.janitor.DiscardAll(context, service.buckets.Audio, audioPaths...)

	ctxutil.GetLogger(context).Warn("audiobook_deleted",
		slog.String("audiobook_id", id),
		slog.Int("chapters", len(audioPaths)),
	)
	return nil
}

// # Files

/*
UploadCover replaces the cover image.

The new object is written first. If the row cannot be updated the new object
is discarded, otherwise the previous cover is.
*/
func (service *Service) UploadCover(context context.Context, id string, file storage.File) (*Audiobook, error) {
	validator := &validate.Validator{}
	validator.Custom(FieldCover, !storage.HasPrefix(file.ContentType, "image/"), "Must be an image")
	validator.Custom(FieldCover, file.Size > maxCoverBytes, "Must be at most 10 MB")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	audiobook, err := service.repo.Get(context, id)
	if err != nil {
		return nil, err
	}
	previous := pointer.Val(audiobook.CoverURL)

	objectPath, err := storage.Put(context, service.store, service.buckets.Covers, id, file)
	if err != nil {
		return nil, err
	}

	coverURL := service.store.PublicURL(service.buckets.Covers, objectPath)
	if err := service.repo.SetCover(context, id, &coverURL); err != nil {
		service.janitor.Discard(context, service.buckets.Covers, objectPath)
		return nil, err
	}

	if oldPath, ok := storage.PathFromPublicURL(service.buckets.Covers, previous); ok {
		service.janitor.Discard(context, service.buckets.Covers, oldPath)
	}

	audiobook.CoverURL = &coverURL
	ctxutil.GetLogger(context).Info("audiobook_cover_uploaded",
		slog.String("audiobook_id", id),
		slog.String("path", objectPath),
	)
	return audiobook, nil
}

// UploadEbook stores the ebook file of a book in the private ebooks bucket.
func (service *Service) UploadEbook(context context.Context, id string, file storage.File) (*Audiobook, error) {
	audiobook, err := service.repo.Get(context, id)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Custom(FieldEbook, audiobook.ContentType != TypeBook, "Only books can have an ebook file")
	validator.OneOf(FieldEbook, file.ContentType, ebookContentTypes...)
	validator.Custom(FieldEbook, file.Size > maxEbookBytes, "Must be at most 200 MB")
	if err := validator.Err(); err != nil {
		return nil, err
	}
	previous := pointer.Val(audiobook.EbookPath)

	objectPath, err := storage.Put(context, service.store, service.buckets.Ebooks, id, file)
	if err != nil {
		return nil, err
	}

	if err := service.repo.SetEbook(context, id, &objectPath); err != nil {
		service.janitor.Discard(context, service.buckets.Ebooks, objectPath)
		return nil, err
	}
	if previous != "" && previous != objectPath {
		service.janitor.Discard(context, service.buckets.Ebooks, previous)
	}

	audiobook.EbookPath = &objectPath
	ctxutil.GetLogger(context).Info("audiobook_ebook_uploaded",
		slog.String("audiobook_id", id),
		slog.String("path", objectPath),
	)
	return audiobook, nil
}

// EbookURL returns a signed download URL for the ebook file.
func (service *Service) EbookURL(context context.Context, id string) (string, error) {
	audiobook, err := service.repo.Get(context, id)
	if err != nil {
		return "", err
	}
	if audiobook.EbookPath == nil || *audiobook.EbookPath == "" {
		return "", apperr.NotFound("Ebook file")
	}

	signed, err := service.store.SignedURL(context, service.buckets.Ebooks, *audiobook.EbookPath, service.signedTTL)
	if err != nil {
		return "", apperr.Storage(err)
	}
	return signed, nil
}

// # Relations

/*
ReplaceCreators sets the full list of creator credits.

sort_order follows the position in credits. The same creator may appear
with several roles, but not twice with the same role.
*/
func (service *Service) ReplaceCreators(context context.Context, id string, credits []CreatorCredit) error {
	validator := &validate.Validator{}
	validator.Custom(FieldCreators, len(credits) > maxCredits, fmt.Sprintf("At most %d creators", maxCredits))

	seen := make(map[string]bool, len(credits))
	for position := range credits {
		credit := &credits[position]
		credit.Role = strings.TrimSpace(credit.Role)
		credit.SortOrder = position + 1

		validator.UUID(FieldCreators, credit.CreatorID)
		validator.OneOf(FieldCreators, credit.Role, creator.Types...)

		key := credit.CreatorID + "|" + credit.Role
		validator.Custom(FieldCreators, seen[key], "Duplicate credit for creator "+credit.CreatorID)
		seen[key] = true
	}
	if err := validator.Err(); err != nil {
		return err
	}

	if _, err := service.repo.Get(context, id); err != nil {
		return err
	}

	if err := service.repo.ReplaceCreators(context, id, credits); err != nil {
		return unknownReference(err, "One of the creators does not exist")
	}

	ctxutil.GetLogger(context).Info("audiobook_creators_replaced",
		slog.String("audiobook_id", id),
		slog.Int("count", len(credits)),
	)
	return nil
}

// ReplaceCategories sets the categories. Music items take music categories.
func (service *Service) ReplaceCategories(context context.Context, id string, categoryIDs []string) error {
	validator := &validate.Validator{}
	validator.Custom(FieldCategories, len(categoryIDs) > maxCategories, fmt.Sprintf("At most %d categories", maxCategories))

	seen := make(map[string]bool, len(categoryIDs))
	for _, categoryID := range categoryIDs {
		validator.UUID(FieldCategories, categoryID)
		validator.Custom(FieldCategories, seen[categoryID], "Duplicate category "+categoryID)
		seen[categoryID] = true
	}
	if err := validator.Err(); err != nil {
		return err
	}

	audiobook, err := service.repo.Get(context, id)
	if err != nil {
		return err
	}

	musical := audiobook.ContentType == TypeMusic
	if err := service.repo.ReplaceCategories(context, id, musical, categoryIDs); err != nil {
		return unknownReference(err, "One of the categories does not exist")
	}

	ctxutil.GetLogger(context).Info("audiobook_categories_replaced",
		slog.String("audiobook_id", id),
		slog.Bool("music", musical),
		slog.Int("count", len(categoryIDs)),
	)
	return nil
}

// UpsertBookMetadata stores the book fields of a book item.
func (service *Service) UpsertBookMetadata(context context.Context, id string, metadata BookMetadata) (*BookMetadata, error) {
	audiobook, err := service.repo.Get(context, id)
	if err != nil {
		return nil, err
	}

	metadata.ISBN = trimmed(metadata.ISBN, persian.Digits)
	metadata.Publisher = trimmed(metadata.Publisher, persian.Normalize)
	metadata.Language = trimmed(metadata.Language, strings.ToLower)

	validator := &validate.Validator{}
	validator.Custom(FieldContentType, audiobook.ContentType != TypeBook, "Book metadata only applies to books")
	validateYear(validator, metadata.PublishYear)
	validator.Custom("page_count", pointer.Val(metadata.PageCount) < 0, "Must not be negative")
	validator.MaxLen("isbn", pointer.Val(metadata.ISBN), 20)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.UpsertBookMetadata(context, id, &metadata); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).Info("book_metadata_saved", slog.String("audiobook_id", id))
	return &metadata, nil
}

// UpsertMusicMetadata stores the music fields of a music item.
func (service *Service) UpsertMusicMetadata(context context.Context, id string, metadata MusicMetadata) (*MusicMetadata, error) {
	audiobook, err := service.repo.Get(context, id)
	if err != nil {
		return nil, err
	}

	metadata.AlbumName = trimmed(metadata.AlbumName, persian.Normalize)
	metadata.Genre = trimmed(metadata.Genre, persian.Normalize)
	metadata.Label = trimmed(metadata.Label, persian.Normalize)
	metadata.Lyrics = trimmed(metadata.Lyrics, strings.TrimSpace)

	validator := &validate.Validator{}
	validator.Custom(FieldContentType, audiobook.ContentType != TypeMusic, "Music metadata only applies to music")
	validateYear(validator, metadata.ReleaseYear)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.UpsertMusicMetadata(context, id, &metadata); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).Info("music_metadata_saved", slog.String("audiobook_id", id))
	return &metadata, nil
}

// # Helpers

func applyInput(audiobook *Audiobook, input Input) {
	if input.TitleFa != nil {
		audiobook.TitleFa = persian.Normalize(*input.TitleFa)
	}
	if input.TitleEn != nil {
		audiobook.TitleEn = pointer.NonEmpty(strings.TrimSpace(*input.TitleEn))
	}
	if input.DescriptionFa != nil {
		audiobook.DescriptionFa = pointer.NonEmpty(persian.Normalize(*input.DescriptionFa))
	}
	if input.DescriptionEn != nil {
		audiobook.DescriptionEn = pointer.NonEmpty(strings.TrimSpace(*input.DescriptionEn))
	}
	if input.ContentType != nil {
		audiobook.ContentType = Type(strings.TrimSpace(*input.ContentType))
	}
}

func validateAudiobook(audiobook *Audiobook) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitleFa, audiobook.TitleFa).MaxLen(FieldTitleFa, audiobook.TitleFa, maxTitleLength)
	validator.MaxLen(FieldTitleEn, pointer.Val(audiobook.TitleEn), maxTitleLength)
	validator.MaxLen(FieldDescriptionFa, pointer.Val(audiobook.DescriptionFa), maxDescriptionLength)
	validator.MaxLen(FieldDescriptionEn, pointer.Val(audiobook.DescriptionEn), maxDescriptionLength)
	validator.OneOf(FieldContentType, string(audiobook.ContentType), Types...)
	return validator.Err()
}

func validateYear(validator *validate.Validator, year *int) {
	if year != nil {
		validator.Range(FieldYear, *year, minYear, maxYear)
	}
}

// trimmed applies normalize to a non-nil value and turns blanks into nil.
func trimmed(value *string, normalize func(string) string) *string {
	if value == nil {
		return nil
	}
	return pointer.NonEmpty(strings.TrimSpace(normalize(*value)))
}

// unknownReference rewrites a foreign key conflict on a link table.
func unknownReference(err error, message string) error {
	if ae := apperr.As(err); ae != nil && ae.Code == "CONFLICT" {
		return apperr.ValidationError(message)
	}
	return err
}
