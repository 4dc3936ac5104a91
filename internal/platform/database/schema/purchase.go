// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// PurchaseTable represents the 'purchases' table (purchase of a content item)
type PurchaseTable struct {
	Table       string
	ID          string
	UserID      string
	AudiobookID string
	Amount      string
	Status      string
	CreatedAt   string
}

// Purchase is the schema definition for purchases
var Purchase = PurchaseTable{
	Table:       "purchases",
	ID:          "id",
	UserID:      "user_id",
	AudiobookID: "audiobook_id",
	Amount:      "amount",
	Status:      "status",
	CreatedAt:   "created_at",
}

func (t PurchaseTable) Columns() []string {
	return []string{t.ID, t.UserID, t.AudiobookID, t.Amount, t.Status, t.CreatedAt}
}
