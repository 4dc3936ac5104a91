// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package ticket is the admin side of user support tickets.

Users open tickets from the listener app; admins read the conversation,
reply, and move the ticket through its statuses. The first admin reply to an
open ticket moves it to in_progress.
*/
package ticket

import (
	"context"
	"time"
)

// # Domain Entities

// Status is the lifecycle state of a ticket.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusClosed     Status = "closed"
)

// Statuses lists the accepted ticket statuses.
var Statuses = []string{string(StatusOpen), string(StatusInProgress), string(StatusResolved), string(StatusClosed)}

// Priorities are set by the listener app; the admin side only filters by them.
var Priorities = []string{"low", "normal", "high", "urgent"}

// Ticket is a support conversation opened by a user.
type Ticket struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserName  *string   `json:"user_name"`
	Subject   string    `json:"subject"`
	Category  *string   `json:"category"`
	Priority  string    `json:"priority"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message is one entry of a ticket conversation.
type Message struct {
	ID        string    `json:"id"`
	TicketID  string    `json:"ticket_id"`
	SenderID  *string   `json:"sender_id"`
	IsAdmin   bool      `json:"is_admin"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// Detail is a ticket with its conversation, oldest message first.
type Detail struct {
	*Ticket
	Messages []*Message `json:"messages"`
}

// Filter narrows a ticket listing.
type Filter struct {
	Statuses []string
	Priority string
}

const (
	FieldStatus   = "status"
	FieldPriority = "priority"
	FieldBody     = "body"
)

// # Repository Contracts

// Repository defines the data access contract for tickets and their messages.
type Repository interface {
	List(context context.Context, filter Filter, limit, offset int) ([]*Ticket, int, error)
	Get(context context.Context, id string) (*Ticket, error)
	ListMessages(context context.Context, ticketID string) ([]*Message, error)

	// AddReply stores an admin message and moves an open ticket to in_progress.
	AddReply(context context.Context, message *Message) error

	SetStatus(context context.Context, id string, status Status) error
}
