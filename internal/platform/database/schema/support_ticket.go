// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// SupportTicketTable represents the 'support_tickets' table (support ticket)
type SupportTicketTable struct {
	Table     string
	ID        string
	UserID    string
	Subject   string
	Category  string
	Priority  string
	Status    string
	CreatedAt string
	UpdatedAt string
}

// SupportTicket is the schema definition for support_tickets
var SupportTicket = SupportTicketTable{
	Table:     "support_tickets",
	ID:        "id",
	UserID:    "user_id",
	Subject:   "subject",
	Category:  "category",
	Priority:  "priority",
	Status:    "status",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}

func (t SupportTicketTable) Columns() []string {
	return []string{t.ID, t.UserID, t.Subject, t.Category, t.Priority, t.Status, t.CreatedAt, t.UpdatedAt}
}
