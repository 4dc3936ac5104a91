// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/navaadmin/internal/platform/database/schema"
	"github.com/taibuivan/navaadmin/internal/platform/dberr"
	"github.com/taibuivan/navaadmin/internal/platform/postgres"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.DB
}

// NewPostgresRepository constructs a PostgreSQL backed statistics source.
func NewPostgresRepository(db postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

/*
Collect runs every aggregate in one batch.

Parameters:
  - since: time.Time (start of the recent revenue window)

Returns:
  - *Stats: Fresh statistics, GeneratedAt set to now
  - error: Database failures
*/
func (repository *PostgresRepository) Collect(context context.Context, since time.Time) (*Stats, error) {
	p, a, t := schema.Profile, schema.Audiobook, schema.SupportTicket
	r, n, b := schema.Review, schema.NarratorRequest, schema.Purchase

	batch := &pgx.Batch{}
	batch.Queue(fmt.Sprintf(`SELECT %s, COUNT(*) FROM %s GROUP BY %s`, p.Role, p.Table, p.Role))
	batch.Queue(fmt.Sprintf(`SELECT %s, COUNT(*) FROM %s GROUP BY %s`, a.Status, a.Table, a.Status))
	batch.Queue(fmt.Sprintf(`
		SELECT
			(SELECT COUNT(*) FROM %s WHERE %s),
			(SELECT COUNT(*) FROM %s WHERE %s = 'open'),
			(SELECT COUNT(*) FROM %s WHERE %s = 'pending'),
			(SELECT COUNT(*) FROM %s WHERE %s = 'pending')
	`, p.Table, p.IsDisabled, t.Table, t.Status, r.Table, r.Status, n.Table, n.Status))
	batch.Queue(fmt.Sprintf(`
		SELECT
			COUNT(*),
			COALESCE(SUM(%s), 0)::BIGINT,
			COALESCE(SUM(%s) FILTER (WHERE %s >= $2), 0)::BIGINT
		FROM %s
		WHERE %s = $1
	`, b.Amount, b.Amount, b.CreatedAt, b.Table, b.Status), PurchaseCompleted, since)
	batch.Queue(fmt.Sprintf(`
		SELECT a.%s, a.%s, COUNT(*), COALESCE(SUM(b.%s), 0)::BIGINT
		FROM %s b
		JOIN %s a ON a.%s = b.%s
		WHERE b.%s = $1
		GROUP BY a.%s, a.%s
		ORDER BY COUNT(*) DESC, a.%s
		LIMIT $2
	`, a.ID, a.TitleFa, b.Amount,
		b.Table, a.Table, a.ID, b.AudiobookID,
		b.Status, a.ID, a.TitleFa, a.TitleFa), PurchaseCompleted, TopSellerLimit)

	results := repository.db.SendBatch(context, batch)
	defer results.Close()

	stats := &Stats{GeneratedAt: time.Now().UTC()}
	var err error

	// ── 1. Grouped counters ──────────────────────────────────────────────
	if stats.UsersByRole, stats.TotalUsers, err = collectGroups(results); err != nil {
		return nil, dberr.Wrap(err, "dashboard_users_by_role")
	}
	if stats.ContentByStatus, stats.TotalContent, err = collectGroups(results); err != nil {
		return nil, dberr.Wrap(err, "dashboard_content_by_status")
	}

	// ── 2. Queues awaiting an admin ──────────────────────────────────────
	err = results.QueryRow().Scan(&stats.DisabledUsers, &stats.OpenTickets, &stats.PendingReviews, &stats.PendingNarratorRequests)
	if err != nil {
		return nil, dberr.Wrap(err, "dashboard_queues")
	}

	// ── 3. Sales ─────────────────────────────────────────────────────────
	if err := results.QueryRow().Scan(&stats.Purchases, &stats.Revenue, &stats.RecentRevenue); err != nil {
		return nil, dberr.Wrap(err, "dashboard_revenue")
	}

	rows, err := results.Query()
	if err != nil {
		return nil, dberr.Wrap(err, "dashboard_top_sellers")
	}
	stats.TopSellers, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (TopSeller, error) {
		var seller TopSeller
		err := row.Scan(&seller.AudiobookID, &seller.TitleFa, &seller.Sales, &seller.Revenue)
		return seller, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "dashboard_top_sellers")
	}

	return stats, nil
}

// collectGroups reads a (key, count) result and its total.
func collectGroups(results pgx.BatchResults) (map[string]int, int, error) {
	rows, err := results.Query()
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	groups := map[string]int{}
	total := 0
	for rows.Next() {
		var (
			key   string
			count int
		)
		if err := rows.Scan(&key, &count); err != nil {
			return nil, 0, err
		}
		groups[key] = count
		total += count
	}
	return groups, total, rows.Err()
}
