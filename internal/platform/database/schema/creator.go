// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CreatorTable represents the 'creators' table (named contributor)
type CreatorTable struct {
	Table            string
	ID               string
	DisplayName      string
	DisplayNameLatin string
	CreatorType      string
	Bio              string
	AvatarURL        string
	Slug             string
	CreatedAt        string
	UpdatedAt        string
}

// Creator is the schema definition for creators
var Creator = CreatorTable{
	Table:            "creators",
	ID:               "id",
	DisplayName:      "display_name",
	DisplayNameLatin: "display_name_latin",
	CreatorType:      "creator_type",
	Bio:              "bio",
	AvatarURL:        "avatar_url",
	Slug:             "slug",
	CreatedAt:        "created_at",
	UpdatedAt:        "updated_at",
}

func (t CreatorTable) Columns() []string {
	return []string{t.ID, t.DisplayName, t.DisplayNameLatin, t.CreatorType, t.Bio, t.AvatarURL, t.Slug, t.CreatedAt, t.UpdatedAt}
}
