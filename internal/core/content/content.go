// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package content manages content items and their approval workflow.

A content item is a row of 'audiobooks' regardless of its type: books,
music, podcasts and articles share the table and differ by content_type and
by the metadata table attached to them.

# Workflow

	draft ──► submitted ──► under_review ──► approved
	  ▲                          │  ▲            │
	  │                          ▼  └────────────┘
	  └──────────────────── rejected
*/
package content

import "time"

// # Discriminators

// Type is the content_type discriminator.
type Type string

const (
	TypeBook    Type = "book"
	TypeMusic   Type = "music"
	TypePodcast Type = "podcast"
	TypeArticle Type = "article"
)

// Types lists every accepted [Type].
var Types = []string{string(TypeBook), string(TypeMusic), string(TypePodcast), string(TypeArticle)}

// Status is the approval state of a content item.
type Status string

const (
	StatusDraft       Status = "draft"
	StatusSubmitted   Status = "submitted"
	StatusUnderReview Status = "under_review"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
)

// Statuses lists every [Status].
var Statuses = []string{
	string(StatusDraft), string(StatusSubmitted), string(StatusUnderReview),
	string(StatusApproved), string(StatusRejected),
}

// # Domain Entities

// Audiobook is a content item.
type Audiobook struct {
	ID              string     `json:"id"`
	TitleFa         string     `json:"title_fa"`
	TitleEn         *string    `json:"title_en"`
	DescriptionFa   *string    `json:"description_fa"`
	DescriptionEn   *string    `json:"description_en"`
	Price           float64    `json:"price"`
	IsFree          bool       `json:"is_free"`
	IsFeatured      bool       `json:"is_featured"`
	IsBrand         bool       `json:"is_brand"`
	ContentType     Type       `json:"content_type"`
	Status          Status     `json:"status"`
	CoverURL        *string    `json:"cover_url"`
	EbookPath       *string    `json:"ebook_path"`
	ChapterCount    int        `json:"chapter_count"`
	TotalDuration   int        `json:"total_duration"`
	RejectionReason *string    `json:"rejection_reason"`
	SubmittedAt     *time.Time `json:"submitted_at"`
	ReviewedAt      *time.Time `json:"reviewed_at"`
	ReviewedBy      *string    `json:"reviewed_by"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Detail is an audiobook with everything attached to it.
type Detail struct {
	*Audiobook
	Creators      []CreatorCredit `json:"creators"`
	Categories    []CategoryRef   `json:"categories"`
	BookMetadata  *BookMetadata   `json:"book_metadata,omitempty"`
	MusicMetadata *MusicMetadata  `json:"music_metadata,omitempty"`
}

// CreatorCredit links a creator to a content item with a role.
type CreatorCredit struct {
	CreatorID   string `json:"creator_id"`
	DisplayName string `json:"display_name,omitempty"`
	Role        string `json:"role"`
	SortOrder   int    `json:"sort_order"`
}

// CategoryRef is a category attached to a content item.
type CategoryRef struct {
	ID     string `json:"id"`
	NameFa string `json:"name_fa"`
}

// BookMetadata holds book-only fields.
type BookMetadata struct {
	ISBN        *string `json:"isbn"`
	Publisher   *string `json:"publisher"`
	PublishYear *int    `json:"publish_year"`
	PageCount   *int    `json:"page_count"`
	Language    *string `json:"language"`
}

// MusicMetadata holds music-only fields.
type MusicMetadata struct {
	AlbumName   *string `json:"album_name"`
	Genre       *string `json:"genre"`
	ReleaseYear *int    `json:"release_year"`
	Label       *string `json:"label"`
	Lyrics      *string `json:"lyrics"`
}

// # Inputs

// Input is the create/update payload. Nil fields are left unchanged on update.
type Input struct {
	TitleFa       *string `json:"title_fa"`
	TitleEn       *string `json:"title_en"`
	DescriptionFa *string `json:"description_fa"`
	DescriptionEn *string `json:"description_en"`
	ContentType   *string `json:"content_type"`
}

// FlagsInput changes pricing and promotion flags.
type FlagsInput struct {
	Price      *float64 `json:"price"`
	IsFree     *bool    `json:"is_free"`
	IsFeatured *bool    `json:"is_featured"`
	IsBrand    *bool    `json:"is_brand"`
}

// TransitionInput moves an item to another status.
type TransitionInput struct {
	Status Status `json:"status"`
	Reason string `json:"reason"`
}

// Filter narrows a content listing.
type Filter struct {
	Statuses    []string
	ContentType string
	Featured    *bool
	Query       string
}

const (
	FieldTitleFa       = "title_fa"
	FieldTitleEn       = "title_en"
	FieldDescriptionFa = "description_fa"
	FieldDescriptionEn = "description_en"
	FieldContentType   = "content_type"
	FieldPrice         = "price"
	FieldStatus        = "status"
	FieldReason        = "reason"
	FieldCreators      = "creators"
	FieldCategories    = "categories"
	FieldCover         = "cover"
	FieldEbook         = "ebook"
	FieldYear          = "year"
)
