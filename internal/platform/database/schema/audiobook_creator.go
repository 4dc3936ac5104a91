// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// AudiobookCreatorTable represents the 'audiobook_creators' table (content item to creator link with a role)
type AudiobookCreatorTable struct {
	Table       string
	AudiobookID string
	CreatorID   string
	Role        string
	SortOrder   string
}

// AudiobookCreator is the schema definition for audiobook_creators
var AudiobookCreator = AudiobookCreatorTable{
	Table:       "audiobook_creators",
	AudiobookID: "audiobook_id",
	CreatorID:   "creator_id",
	Role:        "role",
	SortOrder:   "sort_order",
}

func (t AudiobookCreatorTable) Columns() []string {
	return []string{t.AudiobookID, t.CreatorID, t.Role, t.SortOrder}
}
