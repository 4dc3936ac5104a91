// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package narrator handles requests from listeners who want to become narrators.

Approving a request also promotes the requester's profile to the narrator
role, in the same transaction. Only pending requests can be decided.
*/
package narrator

import (
	"context"
	"time"
)

// Status is the review state of a narrator request.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Statuses lists the accepted values of the status filter.
var Statuses = []string{string(StatusPending), string(StatusApproved), string(StatusRejected)}

// Request is a narrator application.
type Request struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	UserName        *string    `json:"user_name"`
	Email           *string    `json:"email"`
	Experience      *string    `json:"experience"`
	SampleAudioPath *string    `json:"sample_audio_path"`
	Status          Status     `json:"status"`
	AdminNote       *string    `json:"admin_note"`
	ReviewedBy      *string    `json:"reviewed_by"`
	ReviewedAt      *time.Time `json:"reviewed_at"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Decision is the admin side of a request.
type Decision struct {
	ReviewerID *string
	Note       *string
}

const (
	FieldStatus = "status"
	FieldNote   = "admin_note"
)

// Repository defines the data access contract for narrator requests.
type Repository interface {
	List(context context.Context, status string, limit, offset int) ([]*Request, int, error)
	Get(context context.Context, id string) (*Request, error)

	/*
		Approve marks a pending request approved and grants the narrator role.

		Returns:
		  - string: The requester's user id
		  - error: CONFLICT when the request is no longer pending
	*/
	Approve(context context.Context, id string, decision Decision) (string, error)

	// Reject marks a pending request rejected.
	Reject(context context.Context, id string, decision Decision) error
}

// AccessInvalidator drops cached role information of a user.
type AccessInvalidator interface {
	Invalidate(context context.Context, userID string)
}
