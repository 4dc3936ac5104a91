// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/navaadmin/internal/platform/apperr"
	"github.com/taibuivan/navaadmin/internal/platform/ctxutil"
	"github.com/taibuivan/navaadmin/internal/platform/media"
	"github.com/taibuivan/navaadmin/internal/platform/storage"
	"github.com/taibuivan/navaadmin/internal/platform/validate"
	"github.com/taibuivan/navaadmin/pkg/persian"
	"github.com/taibuivan/navaadmin/pkg/slice"
)

const maxTitleLength = 300

// Options configures uploads and signed playback URLs.
type Options struct {
	Bucket       string
	MaxFiles     int
	MaxFileBytes int64
	SignedURLTTL time.Duration
}

// Service orchestrates the business logic for chapters.
type Service struct {
	repo    Repository
	store   storage.Store
	janitor *storage.Janitor
	options Options
}

// NewService constructs a new [Service] with its required dependencies.
func NewService(repo Repository, store storage.Store, janitor *storage.Janitor, options Options) *Service {
	return &Service{repo: repo, store: store, janitor: janitor, options: options}
}

// # Queries

// List returns the chapters of an audiobook in chapter_index order.
func (service *Service) List(context context.Context, audiobookID string) ([]*Chapter, error) {
	if err := service.repo.EnsureAudiobook(context, audiobookID); err != nil {
		return nil, err
	}
	return service.repo.ListByAudiobook(context, audiobookID)
}

// Get returns a single chapter by ID.
func (service *Service) Get(context context.Context, id string) (*Chapter, error) {
	return service.repo.Get(context, id)
}

// PlaybackURL returns a time-limited URL for the chapter audio.
func (service *Service) PlaybackURL(context context.Context, id string) (string, error) {
	chapter, err := service.repo.Get(context, id)
	if err != nil {
		return "", err
	}

	signed, err := service.store.SignedURL(context, service.options.Bucket, chapter.AudioPath, service.options.SignedURLTTL)
	if err != nil {
		return "", apperr.Storage(err)
	}
	return signed, nil
}

// # Uploads

/*
Upload adds one chapter at the end of the audiobook.

title overrides the title read from the audio tags or the filename.
*/
func (service *Service) Upload(context context.Context, audiobookID string, file storage.File, title string, isPreview bool) (*Chapter, error) {
	if err := service.repo.EnsureAudiobook(context, audiobookID); err != nil {
		return nil, err
	}

	pending := NewPendingFile(file)
	chapter, err := service.uploadOne(context, audiobookID, pending, persian.Normalize(title), isPreview)
	if err != nil {
		return nil, err
	}

	if err := service.repo.RefreshStats(context, audiobookID); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).Info("chapter_uploaded",
		slog.String("audiobook_id", audiobookID),
		slog.String("chapter_id", chapter.ID),
		slog.Int("chapter_index", chapter.ChapterIndex),
	)
	return chapter, nil
}

/*
BulkUpload appends one chapter per file, in the given order.

# Processing
  - Files are handled one at a time. Each file is loaded right before its
    upload and released right after, whatever the outcome.
  - A failing file does not stop the loop; its error is reported in the
    result for its index.
  - An object whose row could not be inserted is discarded best-effort.

Returns:
  - *BulkReport: One result per file
  - error: VALIDATION_ERROR for an empty or oversized batch, NOT_FOUND for an
    unknown audiobook; per-file failures never surface here
*/
func (service *Service) BulkUpload(context context.Context, audiobookID string, files []*PendingFile) (*BulkReport, error) {
	validator := &validate.Validator{}
	validator.Custom(FieldFiles, len(files) == 0, "At least one file is required")
	validator.Custom(FieldFiles, len(files) > service.options.MaxFiles, fmt.Sprintf("At most %d files per upload", service.options.MaxFiles))
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.EnsureAudiobook(context, audiobookID); err != nil {
		return nil, err
	}

	logger := ctxutil.GetLogger(context)
	report := &BulkReport{Results: make([]UploadResult, 0, len(files))}

	for index, pending := range files {
		result := UploadResult{Index: index, FileName: pending.Name()}

		chapter, err := service.uploadOne(context, audiobookID, pending, "", false)
		if err != nil {
			result.Error = errorMessage(err)
			report.Failed++
			logger.Warn("bulk_chapter_failed",
				slog.String("audiobook_id", audiobookID),
				slog.Int("index", index),
				slog.String("file_name", pending.Name()),
				slog.Any("error", err),
			)
		} else {
			result.ChapterID = chapter.ID
			report.Uploaded++
		}
		report.Results = append(report.Results, result)
	}

	if report.Uploaded > 0 {
		if err := service.repo.RefreshStats(context, audiobookID); err != nil {
			return nil, err
		}
	}

	logger.Info("bulk_chapters_uploaded",
		slog.String("audiobook_id", audiobookID),
		slog.Int("uploaded", report.Uploaded),
		slog.Int("failed", report.Failed),
	)
	return report, nil
}

/*
uploadOne runs the pipeline of a single file.

# Flow
 1. Check type and size.
 2. Load the bytes.
 3. Probe duration and title.
 4. Upload to <bucket>/<audiobookID>/<uuidv7><ext>.
 5. Insert the row; on failure discard the uploaded object.
 6. Release the bytes.
*/
func (service *Service) uploadOne(context context.Context, audiobookID string, pending *PendingFile, title string, isPreview bool) (*Chapter, error) {
	defer pending.Release()

	// ── 1. Validation ──
	validator := &validate.Validator{}
	validator.Custom(FieldFile, !storage.HasPrefix(pending.ContentType(), "audio/"), "Must be an audio file")
	validator.Custom(FieldFile, pending.Size() > service.options.MaxFileBytes, "File is too large")
	validator.MaxLen(FieldTitle, title, maxTitleLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// ── 2. Load ──
	if err := pending.Load(); err != nil {
		return nil, apperr.ValidationError("Could not read uploaded file")
	}
	data := pending.Bytes()

	// ── 3. Probe ──
	info, err := media.ProbeAudio(bytes.NewReader(data), pending.Name())
	if err != nil {
		ctxutil.GetLogger(context).Debug("audio_probe_failed",
			slog.String("file_name", pending.Name()),
			slog.Any("error", err),
		)
	}
	if title == "" {
		title = info.Title
	}
	if title == "" {
		title = media.TitleFromFilename(pending.Name())
	}

	// ── 4. Storage ──
	objectPath := storage.ObjectPath(audiobookID, pending.Name())
	if err := service.store.Upload(context, service.options.Bucket, objectPath, bytes.NewReader(data), pending.ContentType()); err != nil {
		return nil, apperr.Storage(err)
	}

	// ── 5. Row ──
	chapter := &Chapter{
		AudiobookID:     audiobookID,
		Title:           persian.Normalize(title),
		AudioPath:       objectPath,
		DurationSeconds: info.DurationSeconds,
		FileSize:        int64(len(data)),
		IsPreview:       isPreview,
	}
	if err := service.repo.Create(context, chapter); err != nil {
		service.janitor.Discard(context, service.options.Bucket, objectPath)
		return nil, err
	}

	return chapter, nil
}

// # Mutations

// Update changes the title or preview flag of a chapter.
func (service *Service) Update(context context.Context, id string, input Input) (*Chapter, error) {
	chapter, err := service.repo.Get(context, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		chapter.Title = persian.Normalize(*input.Title)
	}
	if input.IsPreview != nil {
		chapter.IsPreview = *input.IsPreview
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, chapter.Title).MaxLen(FieldTitle, chapter.Title, maxTitleLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, chapter); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).Info("chapter_updated", slog.String("chapter_id", id))
	return chapter, nil
}

/*
Delete removes a chapter.

# Flow
 1. Delete the row.
 2. Discard the audio object best-effort.
 3. Renumber the remaining chapters so indices stay 1..N.
 4. Recompute the audiobook statistics.
*/
func (service *Service) Delete(context context.Context, id string) error {
	chapter, err := service.repo.Get(context, id)
	if err != nil {
		return err
	}

	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.janitor.Discard(context, service.options.Bucket, chapter.AudioPath)

	remaining, err := service.repo.ListByAudiobook(context, chapter.AudiobookID)
	if err != nil {
		return err
	}
	if !contiguous(remaining) {
		if err := service.repo.ApplyOrder(context, chapter.AudiobookID, chapterIDs(remaining)); err != nil {
			return err
		}
	}

	if err := service.repo.RefreshStats(context, chapter.AudiobookID); err != nil {
		return err
	}

	ctxutil.GetLogger(context).Warn("chapter_deleted",
		slog.String("audiobook_id", chapter.AudiobookID),
		slog.String("chapter_id", id),
	)
	return nil
}

/*
Reorder applies a manual order typed by an admin.

entries must name every chapter of the audiobook exactly once, in the order
they were shown. See [ResolveOrder] for how the typed numbers are read.

Returns:
  - []*Chapter: The chapters in their new order
*/
func (service *Service) Reorder(context context.Context, audiobookID string, entries []OrderEntry) ([]*Chapter, error) {
	chapters, err := service.List(context, audiobookID)
	if err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(chapters))
	for _, chapter := range chapters {
		known[chapter.ID] = true
	}

	validator := &validate.Validator{}
	validator.Custom(FieldEntries, len(entries) != len(chapters),
		fmt.Sprintf("Expected %d entries, got %d", len(chapters), len(entries)))
	seen := make(map[string]bool, len(entries))
	for _, entry := range entries {
		validator.Custom(FieldEntries, !known[entry.ChapterID], "Unknown chapter "+entry.ChapterID)
		validator.Custom(FieldEntries, seen[entry.ChapterID], "Duplicate chapter "+entry.ChapterID)
		seen[entry.ChapterID] = true
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	orders := slice.Map(entries, func(entry OrderEntry) string { return entry.Order })
	resolved := ResolveOrder(entries, orders)
	ids := slice.Map(resolved, func(entry OrderEntry) string { return entry.ChapterID })

	if err := service.repo.ApplyOrder(context, audiobookID, ids); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).Info("chapters_reordered",
		slog.String("audiobook_id", audiobookID),
		slog.Int("count", len(ids)),
	)
	return service.repo.ListByAudiobook(context, audiobookID)
}

// # Helpers

func contiguous(chapters []*Chapter) bool {
	for i, chapter := range chapters {
		if chapter.ChapterIndex != i+1 {
			return false
		}
	}
	return true
}

func chapterIDs(chapters []*Chapter) []string {
	return slice.Map(chapters, func(chapter *Chapter) string { return chapter.ID })
}

// errorMessage is the text shown next to a failed file: the application
// message (or its first field error) when there is one, the raw error otherwise.
func errorMessage(err error) string {
	if ae := apperr.As(err); ae != nil {
		if len(ae.Details) > 0 {
			return ae.Details[0].Message
		}
		return ae.Message
	}
	return err.Error()
}
