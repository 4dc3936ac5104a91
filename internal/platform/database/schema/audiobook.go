// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// AudiobookTable represents the 'audiobooks' table (any content item: book, music, podcast or article)
type AudiobookTable struct {
	Table           string
	ID              string
	TitleFa         string
	TitleEn         string
	DescriptionFa   string
	DescriptionEn   string
	Price           string
	IsFree          string
	IsFeatured      string
	IsBrand         string
	ContentType     string
	Status          string
	CoverURL        string
	EbookPath       string
	ChapterCount    string
	TotalDuration   string
	RejectionReason string
	SubmittedAt     string
	ReviewedAt      string
	ReviewedBy      string
	CreatedAt       string
	UpdatedAt       string
}

// Audiobook is the schema definition for audiobooks
var Audiobook = AudiobookTable{
	Table:           "audiobooks",
	ID:              "id",
	TitleFa:         "title_fa",
	TitleEn:         "title_en",
	DescriptionFa:   "description_fa",
	DescriptionEn:   "description_en",
	Price:           "price",
	IsFree:          "is_free",
	IsFeatured:      "is_featured",
	IsBrand:         "is_brand",
	ContentType:     "content_type",
	Status:          "status",
	CoverURL:        "cover_url",
	EbookPath:       "ebook_path",
	ChapterCount:    "chapter_count",
	TotalDuration:   "total_duration",
	RejectionReason: "rejection_reason",
	SubmittedAt:     "submitted_at",
	ReviewedAt:      "reviewed_at",
	ReviewedBy:      "reviewed_by",
	CreatedAt:       "created_at",
	UpdatedAt:       "updated_at",
}

func (t AudiobookTable) Columns() []string {
	return []string{t.ID, t.TitleFa, t.TitleEn, t.DescriptionFa, t.DescriptionEn, t.Price, t.IsFree, t.IsFeatured, t.IsBrand, t.ContentType, t.Status, t.CoverURL, t.EbookPath, t.ChapterCount, t.TotalDuration, t.RejectionReason, t.SubmittedAt, t.ReviewedAt, t.ReviewedBy, t.CreatedAt, t.UpdatedAt}
}
