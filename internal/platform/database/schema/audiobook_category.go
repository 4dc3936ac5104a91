// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// AudiobookCategoryTable represents the 'audiobook_categories' table (content item to category link)
type AudiobookCategoryTable struct {
	Table       string
	AudiobookID string
	CategoryID  string
}

// AudiobookCategory is the schema definition for audiobook_categories
var AudiobookCategory = AudiobookCategoryTable{
	Table:       "audiobook_categories",
	AudiobookID: "audiobook_id",
	CategoryID:  "category_id",
}

func (t AudiobookCategoryTable) Columns() []string {
	return []string{t.AudiobookID, t.CategoryID}
}
