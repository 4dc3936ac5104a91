// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// BookMetadataTable represents the 'book_metadata' table (book-specific fields of a content item)
type BookMetadataTable struct {
	Table       string
	AudiobookID string
	ISBN        string
	Publisher   string
	PublishYear string
	PageCount   string
	Language    string
	UpdatedAt   string
}

// BookMetadata is the schema definition for book_metadata
var BookMetadata = BookMetadataTable{
	Table:       "book_metadata",
	AudiobookID: "audiobook_id",
	ISBN:        "isbn",
	Publisher:   "publisher",
	PublishYear: "publish_year",
	PageCount:   "page_count",
	Language:    "language",
	UpdatedAt:   "updated_at",
}

func (t BookMetadataTable) Columns() []string {
	return []string{t.AudiobookID, t.ISBN, t.Publisher, t.PublishYear, t.PageCount, t.Language, t.UpdatedAt}
}
