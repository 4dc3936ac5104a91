// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CategoryTable represents the 'categories' table (book/podcast/article category)
type CategoryTable struct {
	Table     string
	ID        string
	NameFa    string
	NameEn    string
	Slug      string
	Icon      string
	IsActive  string
	SortOrder string
	CreatedAt string
	UpdatedAt string
}

// Category is the schema definition for categories
var Category = CategoryTable{
	Table:     "categories",
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

func (t CategoryTable) Columns() []string {
	return []string{t.ID, t.NameFa, t.NameEn, t.Slug, t.Icon, t.IsActive, t.SortOrder, t.CreatedAt, t.UpdatedAt}
}
