// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ReviewTable represents the 'reviews' table (listener review)
type ReviewTable struct {
	Table       string
	ID          string
	AudiobookID string
	UserID      string
	Rating      string
	Body        string
	Status      string
	CreatedAt   string
	UpdatedAt   string
}

// Review is the schema definition for reviews
var Review = ReviewTable{
	Table:       "reviews",
	ID:          "id",
	AudiobookID: "audiobook_id",
	UserID:      "user_id",
	Rating:      "rating",
	Body:        "body",
	Status:      "status",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
}

func (t ReviewTable) Columns() []string {
	return []string{t.ID, t.AudiobookID, t.UserID, t.Rating, t.Body, t.Status, t.CreatedAt, t.UpdatedAt}
}
