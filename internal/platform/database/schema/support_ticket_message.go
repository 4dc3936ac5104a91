// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// SupportTicketMessageTable represents the 'support_ticket_messages' table (message in a support ticket thread)
type SupportTicketMessageTable struct {
	Table     string
	ID        string
	TicketID  string
	SenderID  string
	IsAdmin   string
	Body      string
	CreatedAt string
}

// SupportTicketMessage is the schema definition for support_ticket_messages
var SupportTicketMessage = SupportTicketMessageTable{
	Table:     "support_ticket_messages",
	ID:        "id",
	TicketID:  "ticket_id",
	SenderID:  "sender_id",
	IsAdmin:   "is_admin",
	Body:      "body",
	CreatedAt: "created_at",
}

func (t SupportTicketMessageTable) Columns() []string {
	return []string{t.ID, t.TicketID, t.SenderID, t.IsAdmin, t.Body, t.CreatedAt}
}
