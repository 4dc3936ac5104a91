// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// AudiobookMusicCategoryTable represents the 'audiobook_music_categories' table (music item to music category link)
type AudiobookMusicCategoryTable struct {
	Table       string
	AudiobookID string
	CategoryID  string
}

// AudiobookMusicCategory is the schema definition for audiobook_music_categories
var AudiobookMusicCategory = AudiobookMusicCategoryTable{
	Table:       "audiobook_music_categories",
	AudiobookID: "audiobook_id",
	CategoryID:  "music_category_id",
}

func (t AudiobookMusicCategoryTable) Columns() []string {
	return []string{t.AudiobookID, t.CategoryID}
}
