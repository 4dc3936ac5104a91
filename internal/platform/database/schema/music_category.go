// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// MusicCategory is the schema definition for music_categories.
//
// The table has the same columns as categories, so it reuses [CategoryTable].
var MusicCategory = CategoryTable{
	Table:     "music_categories",
	ID:        "id",
	NameFa:    "name_fa",
	NameEn:    "name_en",
	Slug:      "slug",
	Icon:      "icon",
	IsActive:  "is_active",
	SortOrder: "sort_order",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}
