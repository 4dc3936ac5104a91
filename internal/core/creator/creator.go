// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package creator manages the people credited on content items: authors,
// narrators, translators, musicians and publishers.
package creator

import "time"

// Type is the primary role of a creator.
type Type string

const (
	TypeNarrator   Type = "narrator"
	TypeAuthor     Type = "author"
	TypeTranslator Type = "translator"
	TypeArtist     Type = "artist"
	TypeComposer   Type = "composer"
	TypeSinger     Type = "singer"
	TypeSpeaker    Type = "speaker"
	TypePublisher  Type = "publisher"
)

// Types lists every accepted [Type] value.
var Types = []string{
	string(TypeNarrator), string(TypeAuthor), string(TypeTranslator), string(TypeArtist),
	string(TypeComposer), string(TypeSinger), string(TypeSpeaker), string(TypePublisher),
}

// Creator is a named contributor.
type Creator struct {
	ID               string    `json:"id"`
	DisplayName      string    `json:"display_name"`
	DisplayNameLatin *string   `json:"display_name_latin"`
	CreatorType      Type      `json:"creator_type"`
	Bio              *string   `json:"bio"`
	AvatarURL        *string   `json:"avatar_url"`
	Slug             string    `json:"slug"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Input is the create/update payload. Nil fields are left unchanged on update.
type Input struct {
	DisplayName      *string `json:"display_name"`
	DisplayNameLatin *string `json:"display_name_latin"`
	CreatorType      *string `json:"creator_type"`
	Bio              *string `json:"bio"`
}

// Filter narrows a creator listing.
type Filter struct {
	Type  string
	Query string
}

const (
	FieldDisplayName      = "display_name"
	FieldDisplayNameLatin = "display_name_latin"
	FieldCreatorType      = "creator_type"
	FieldBio              = "bio"
	FieldAvatar           = "avatar"
)
