// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package review moderates listener reviews of content items.
package review

import (
	"context"
	"time"
)

// Status is the moderation state of a review.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Statuses lists the accepted values of the status filter.
var Statuses = []string{string(StatusPending), string(StatusApproved), string(StatusRejected)}

// Review is a rating with an optional text left by a listener.
type Review struct {
	ID             string    `json:"id"`
	AudiobookID    string    `json:"audiobook_id"`
	AudiobookTitle string    `json:"audiobook_title"`
	UserID         string    `json:"user_id"`
	UserName       *string   `json:"user_name"`
	Rating         int       `json:"rating"`
	Body           *string   `json:"body"`
	Status         Status    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Filter narrows a review listing. Zero values do not filter.
type Filter struct {
	Status      string
	AudiobookID string
	Rating      int
}

const (
	FieldStatus      = "status"
	FieldAudiobookID = "audiobook_id"
	FieldRating      = "rating"
)

// Repository defines the data access contract for reviews.
type Repository interface {
	List(context context.Context, filter Filter, limit, offset int) ([]*Review, int, error)
	Get(context context.Context, id string) (*Review, error)
	SetStatus(context context.Context, id string, status Status) error
	Delete(context context.Context, id string) error
}
