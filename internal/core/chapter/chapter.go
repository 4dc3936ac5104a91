// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package chapter manages the audio chapters of a content item.

chapter_index is unique per audiobook. Every write that moves indices goes
through a two-phase update (negative placeholders first, final values second)
inside one transaction, so no intermediate state violates the constraint.
After a chapter is added or removed the audiobook's chapter_count and
total_duration are recomputed from the chapters table.
*/
package chapter

import "time"

// # Domain Entities

// Chapter is one audio file of an audiobook.
type Chapter struct {
	ID              string    `json:"id"`
	AudiobookID     string    `json:"audiobook_id"`
	Title           string    `json:"title"`
	ChapterIndex    int       `json:"chapter_index"`
	AudioPath       string    `json:"audio_path"`
	DurationSeconds int       `json:"duration_seconds"`
	FileSize        int64     `json:"file_size"`
	IsPreview       bool      `json:"is_preview"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Input is the update payload. Nil fields are left unchanged.
type Input struct {
	Title     *string `json:"title"`
	IsPreview *bool   `json:"is_preview"`
}

// OrderEntry is one row of a manual reorder: a chapter and the number an
// admin typed next to it. Order may be empty or not a number.
type OrderEntry struct {
	ChapterID string `json:"chapter_id"`
	Order     string `json:"order"`
}

// # Upload Reports

// UploadResult is the outcome of one file of a bulk upload.
type UploadResult struct {
	Index     int    `json:"index"`
	FileName  string `json:"file_name"`
	ChapterID string `json:"chapter_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// BulkReport summarises a bulk upload.
type BulkReport struct {
	Uploaded int            `json:"uploaded"`
	Failed   int            `json:"failed"`
	Results  []UploadResult `json:"results"`
}

const (
	FieldTitle   = "title"
	FieldFile    = "file"
	FieldFiles   = "files"
	FieldEntries = "entries"
	FieldPreview = "is_preview"
)
