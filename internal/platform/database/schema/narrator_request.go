// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// NarratorRequestTable represents the 'narrator_requests' table (request to become a narrator)
type NarratorRequestTable struct {
	Table           string
	ID              string
	UserID          string
	Experience      string
	SampleAudioPath string
	Status          string
	AdminNote       string
	ReviewedBy      string
	ReviewedAt      string
	CreatedAt       string
}

// NarratorRequest is the schema definition for narrator_requests
var NarratorRequest = NarratorRequestTable{
	Table:           "narrator_requests",
	ID:              "id",
	UserID:          "user_id",
	Experience:      "experience",
	SampleAudioPath: "sample_audio_path",
	Status:          "status",
	AdminNote:       "admin_note",
	ReviewedBy:      "reviewed_by",
	ReviewedAt:      "reviewed_at",
	CreatedAt:       "created_at",
}

func (t NarratorRequestTable) Columns() []string {
	return []string{t.ID, t.UserID, t.Experience, t.SampleAudioPath, t.Status, t.AdminNote, t.ReviewedBy, t.ReviewedAt, t.CreatedAt}
}
