// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package category manages the two browse taxonomies of the platform.

Books, podcasts and articles are filed under 'categories'; music is filed
under 'music_categories'. Both tables share one shape, so one [Service] type
serves both, each instance bound to its own table.
*/
package category

import "time"

// Kind selects which taxonomy a service instance manages.
type Kind string

const (
	KindGeneral Kind = "category"
	KindMusic   Kind = "music_category"
)

// Category is a browse category shown in the listener app.
type Category struct {
	ID        string    `json:"id"`
	NameFa    string    `json:"name_fa"`
	NameEn    *string   `json:"name_en"`
	Slug      string    `json:"slug"`
	Icon      *string   `json:"icon"`
	IsActive  bool      `json:"is_active"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Input is the create/update payload. Nil fields are left unchanged on update.
type Input struct {
	NameFa   *string `json:"name_fa"`
	NameEn   *string `json:"name_en"`
	Slug     *string `json:"slug"`
	Icon     *string `json:"icon"`
	IsActive *bool   `json:"is_active"`
}

// Filter narrows a category listing.
type Filter struct {
	Active *bool
	Query  string
}

const (
	FieldNameFa   = "name_fa"
	FieldNameEn   = "name_en"
	FieldSlug     = "slug"
	FieldIcon     = "icon"
	FieldIDs      = "ids"
	FieldIsActive = "is_active"
)
