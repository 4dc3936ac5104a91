// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package dashboard aggregates the counters shown on the admin home page.

The numbers are computed in a single database round trip and cached in Redis,
so opening the panel does not scan the purchase table on every visit. A cron
job keeps the cache warm.
*/
package dashboard

import (
	"context"
	"time"
)

// PurchaseCompleted is the status of a paid purchase.
const PurchaseCompleted = "completed"

// TopSellerLimit is the number of best selling items reported.
const TopSellerLimit = 5

// RevenueWindow is the period covered by [Stats.RecentRevenue].
const RevenueWindow = 30 * 24 * time.Hour

// Stats is the dashboard payload.
type Stats struct {
	UsersByRole             map[string]int `json:"users_by_role"`
	TotalUsers              int            `json:"total_users"`
	DisabledUsers           int            `json:"disabled_users"`
	ContentByStatus         map[string]int `json:"content_by_status"`
	TotalContent            int            `json:"total_content"`
	OpenTickets             int            `json:"open_tickets"`
	PendingReviews          int            `json:"pending_reviews"`
	PendingNarratorRequests int            `json:"pending_narrator_requests"`
	Purchases               int            `json:"purchases"`
	Revenue                 int64          `json:"revenue"`
	RecentRevenue           int64          `json:"recent_revenue"`
	TopSellers              []TopSeller    `json:"top_sellers"`
	GeneratedAt             time.Time      `json:"generated_at"`
}

// TopSeller is one row of the best sellers list.
type TopSeller struct {
	AudiobookID string `json:"audiobook_id"`
	TitleFa     string `json:"title_fa"`
	Sales       int    `json:"sales"`
	Revenue     int64  `json:"revenue"`
}

// Repository computes fresh statistics.
type Repository interface {
	Collect(context context.Context, since time.Time) (*Stats, error)
}

// Cache stores the last computed statistics. A miss is (nil, nil).
type Cache interface {
	Get(context context.Context) (*Stats, error)
	Set(context context.Context, stats *Stats) error
}
