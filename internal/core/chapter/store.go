// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import "context"

// Repository persists chapters and the chapter statistics of their audiobook.
type Repository interface {
	// EnsureAudiobook returns NOT_FOUND when the audiobook does not exist.
	EnsureAudiobook(context context.Context, audiobookID string) error

	// ListByAudiobook returns the chapters ordered by chapter_index.
	ListByAudiobook(context context.Context, audiobookID string) ([]*Chapter, error)

	Get(context context.Context, id string) (*Chapter, error)

	// Create appends the chapter after the current last index.
	Create(context context.Context, chapter *Chapter) error

	Update(context context.Context, chapter *Chapter) error
	Delete(context context.Context, id string) error

	/*
		ApplyOrder renumbers the chapters of an audiobook to 1..N following ids.

		ids must list every chapter of the audiobook exactly once.
	*/
	ApplyOrder(context context.Context, audiobookID string, ids []string) error

	// RefreshStats recomputes chapter_count and total_duration of the audiobook.
	RefreshStats(context context.Context, audiobookID string) error
}
