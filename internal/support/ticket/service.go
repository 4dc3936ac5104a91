// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ticket

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/navaadmin/internal/platform/ctxutil"
	"github.com/taibuivan/navaadmin/internal/platform/validate"
	"github.com/taibuivan/navaadmin/pkg/pointer"
)

const maxBodyLength = 5000

// Service orchestrates the business logic for support tickets.
type Service struct {
	repo Repository
}

// NewService constructs a new [Service] with its required repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns one page of tickets matching filter, plus the total count.
func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*Ticket, int, error) {
	validator := &validate.Validator{}
	for _, status := range filter.Statuses {
		validator.OneOf(FieldStatus, status, Statuses...)
	}
	if filter.Priority != "" {
		validator.OneOf(FieldPriority, filter.Priority, Priorities...)
	}
	if err := validator.Err(); err != nil {
		return nil, 0, err
	}
	return service.repo.List(context, filter, limit, offset)
}

// Get returns the ticket and its whole conversation.
func (service *Service) Get(context context.Context, id string) (*Detail, error) {
	ticket, err := service.repo.Get(context, id)
	if err != nil {
		return nil, err
	}

	messages, err := service.repo.ListMessages(context, id)
	if err != nil {
		return nil, err
	}
	return &Detail{Ticket: ticket, Messages: messages}, nil
}

/*
Reply adds an admin message to a ticket.

Closed tickets do not take replies. An open ticket moves to in_progress.
*/
func (service *Service) Reply(context context.Context, ticketID, body string) (*Message, error) {
	body = strings.TrimSpace(body)

	validator := &validate.Validator{}
	validator.Required(FieldBody, body).MaxLen(FieldBody, body, maxBodyLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	ticket, err := service.repo.Get(context, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Status == StatusClosed {
		return nil, validate.RequiredError(FieldStatus, "Closed tickets cannot be answered")
	}

	message := &Message{
		TicketID: ticketID,
		SenderID: pointer.NonEmpty(ctxutil.GetActorID(context)),
		Body:     body,
	}
	if err := service.repo.AddReply(context, message); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).Info("ticket_replied",
		slog.String("ticket_id", ticketID),
		slog.String("previous_status", string(ticket.Status)),
	)
	return message, nil
}

// SetStatus moves a ticket to status.
func (service *Service) SetStatus(context context.Context, id string, status Status) error {
	validator := &validate.Validator{}
	if err := validator.OneOf(FieldStatus, string(status), Statuses...).Err(); err != nil {
		return err
	}

	if err := service.repo.SetStatus(context, id, status); err != nil {
		return err
	}

	ctxutil.GetLogger(context).Info("ticket_status_changed",
		slog.String("ticket_id", id),
		slog.String("status", string(status)),
	)
	return nil
}
