// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// MusicMetadataTable represents the 'music_metadata' table (music-specific fields of a content item)
type MusicMetadataTable struct {
	Table       string
	AudiobookID string
	AlbumName   string
	Genre       string
	ReleaseYear string
	Label       string
	Lyrics      string
	UpdatedAt   string
}

// MusicMetadata is the schema definition for music_metadata
var MusicMetadata = MusicMetadataTable{
	Table:       "music_metadata",
	AudiobookID: "audiobook_id",
	AlbumName:   "album_name",
	Genre:       "genre",
	ReleaseYear: "release_year",
	Label:       "label",
	Lyrics:      "lyrics",
	UpdatedAt:   "updated_at",
}

func (t MusicMetadataTable) Columns() []string {
	return []string{t.AudiobookID, t.AlbumName, t.Genre, t.ReleaseYear, t.Label, t.Lyrics, t.UpdatedAt}
}
