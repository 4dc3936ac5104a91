// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import "context"

// Repository persists content items and their relations.
type Repository interface {
	List(context context.Context, filter Filter, limit, offset int) ([]*Audiobook, int, error)
	Get(context context.Context, id string) (*Audiobook, error)
	GetDetail(context context.Context, id string) (*Detail, error)
	Create(context context.Context, audiobook *Audiobook) error
	Update(context context.Context, audiobook *Audiobook) error
	Delete(context context.Context, id string) error

	/*
		UpdateStatus moves an item from one status to another.

		The update only applies while the row is still in status from, so two
		admins acting at once cannot both succeed.

		Returns:
		  - error: CONFLICT when the row is no longer in status from
	*/
	UpdateStatus(context context.Context, id string, from Status, change StatusChange) error

	SetFlags(context context.Context, audiobook *Audiobook) error
	SetCover(context context.Context, id string, coverURL *string) error
	SetEbook(context context.Context, id string, ebookPath *string) error

	// ChapterAudioPaths lists audio objects of every chapter, for cleanup after delete.
	ChapterAudioPaths(context context.Context, id string) ([]string, error)

	ReplaceCreators(context context.Context, id string, credits []CreatorCredit) error
	ReplaceCategories(context context.Context, id string, musical bool, categoryIDs []string) error
	UpsertBookMetadata(context context.Context, id string, metadata *BookMetadata) error
	UpsertMusicMetadata(context context.Context, id string, metadata *MusicMetadata) error
}

// StatusChange carries the columns written by a status transition.
type StatusChange struct {
	To              Status
	RejectionReason *string
	ReviewedBy      *string
	MarkSubmitted   bool
	MarkReviewed    bool
}
