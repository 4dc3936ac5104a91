// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ticket

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/navaadmin/internal/platform/database/schema"
	"github.com/taibuivan/navaadmin/internal/platform/dberr"
	"github.com/taibuivan/navaadmin/internal/platform/postgres"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.DB
}

// NewPostgresRepository constructs a PostgreSQL backed ticket store.
func NewPostgresRepository(db postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ticketSelect joins the author's display name.
func ticketSelect() string {
	t, p := schema.SupportTicket, schema.Profile
	return fmt.Sprintf(`SELECT %s, p.%s FROM %s t LEFT JOIN %s p ON p.%s = t.%s`,
		schema.Qualified("t", t.ID, t.UserID, t.Subject, t.Category, t.Priority, t.Status, t.CreatedAt, t.UpdatedAt),
		p.DisplayName, t.Table, p.Table, p.ID, t.UserID)
}

func scanTicket(row pgx.Row) (*Ticket, error) {
	t := &Ticket{}
	err := row.Scan(&t.ID, &t.UserID, &t.Subject, &t.Category, &t.Priority, &t.Status, &t.CreatedAt, &t.UpdatedAt, &t.UserName)
	return t, err
}

// List returns one page of tickets, most recently updated first, with the total count.
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Ticket, int, error) {
	t := schema.SupportTicket

	where := ` WHERE 1=1`
	var args []any
	if len(filter.Statuses) > 0 {
		args = append(args, filter.Statuses)
		where += fmt.Sprintf(` AND t.%s = ANY($%d)`, t.Status, len(args))
	}
	if filter.Priority != "" {
		args = append(args, filter.Priority)
		where += fmt.Sprintf(` AND t.%s = $%d`, t.Priority, len(args))
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s t%s`, t.Table, where)
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_tickets")
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`%s%s ORDER BY t.%s DESC LIMIT $%d OFFSET $%d`, ticketSelect(), where, t.UpdatedAt, len(args)-1, len(args))

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_tickets")
	}
	defer rows.Close()

	tickets := []*Ticket{}
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_ticket")
		}
		tickets = append(tickets, ticket)
	}
	return tickets, total, dberr.Wrap(rows.Err(), "list_tickets")
}

// Get fetches a ticket joined with the name of its author.
func (repository *PostgresRepository) Get(context context.Context, id string) (*Ticket, error) {
	query := fmt.Sprintf(`%s WHERE t.%s = $1`, ticketSelect(), schema.SupportTicket.ID)

	ticket, err := scanTicket(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_ticket")
	}
	return ticket, nil
}

// ListMessages returns the thread of a ticket, oldest first.
func (repository *PostgresRepository) ListMessages(context context.Context, ticketID string) ([]*Message, error) {
	m := schema.SupportTicketMessage
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC`,
		schema.List(m.ID, m.TicketID, m.SenderID, m.IsAdmin, m.Body, m.CreatedAt), m.Table, m.TicketID, m.CreatedAt)

	rows, err := repository.db.Query(context, query, ticketID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_ticket_messages")
	}
	defer rows.Close()

	messages := []*Message{}
	for rows.Next() {
		message := &Message{}
		if err := rows.Scan(&message.ID, &message.TicketID, &message.SenderID, &message.IsAdmin, &message.Body, &message.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_ticket_message")
		}
		messages = append(messages, message)
	}
	return messages, dberr.Wrap(rows.Err(), "list_ticket_messages")
}

// AddReply stores message and fills its ID and creation time.
func (repository *PostgresRepository) AddReply(context context.Context, message *Message) error {
	m, t := schema.SupportTicketMessage, schema.SupportTicket
	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, TRUE, $3)
		RETURNING %s, %s
	`, m.Table, m.TicketID, m.SenderID, m.IsAdmin, m.Body, m.ID, m.CreatedAt)

	touchQuery := fmt.Sprintf(`
		UPDATE %s
		SET %s = CASE WHEN %s = $2 THEN $3 ELSE %s END, %s = NOW()
		WHERE %s = $1
	`, t.Table, t.Status, t.Status, t.Status, t.UpdatedAt, t.ID)

	return postgres.InTx(context, repository.db, func(transaction pgx.Tx) error {
		err := transaction.QueryRow(context, insertQuery, message.TicketID, message.SenderID, message.Body).
			Scan(&message.ID, &message.CreatedAt)
		if err != nil {
			return dberr.Wrap(err, "insert_ticket_message")
		}

		cmd, err := transaction.Exec(context, touchQuery, message.TicketID, StatusOpen, StatusInProgress)
		if err != nil {
			return dberr.Wrap(err, "touch_ticket")
		}
		if cmd.RowsAffected() == 0 {
			return dberr.ErrNotFound
		}
		message.IsAdmin = true
		return nil
	})
}

// SetStatus updates the status column of a ticket.
func (repository *PostgresRepository) SetStatus(context context.Context, id string, status Status) error {
	t := schema.SupportTicket
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`, t.Table, t.Status, t.UpdatedAt, t.ID)

	cmd, err := repository.db.Exec(context, query, id, status)
	if err != nil {
		return dberr.Wrap(err, "set_ticket_status")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
