// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ChapterTable represents the 'chapters' table (chapter of a content item)
type ChapterTable struct {
	Table           string
	ID              string
	AudiobookID     string
	Title           string
	ChapterIndex    string
	AudioPath       string
	DurationSeconds string
	FileSize        string
	IsPreview       string
	CreatedAt       string
	UpdatedAt       string
}

// Chapter is the schema definition for chapters
var Chapter = ChapterTable{
	Table:           "chapters",
	ID:              "id",
	AudiobookID:     "audiobook_id",
	Title:           "title",
	ChapterIndex:    "chapter_index",
	AudioPath:       "audio_path",
	DurationSeconds: "duration_seconds",
	FileSize:        "file_size",
	IsPreview:       "is_preview",
	CreatedAt:       "created_at",
	UpdatedAt:       "updated_at",
}

func (t ChapterTable) Columns() []string {
	return []string{t.ID, t.AudiobookID, t.Title, t.ChapterIndex, t.AudioPath, t.DurationSeconds, t.FileSize, t.IsPreview, t.CreatedAt, t.UpdatedAt}
}
