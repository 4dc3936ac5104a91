// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/navaadmin/internal/platform/database/schema"
	"github.com/taibuivan/navaadmin/internal/platform/dberr"
	"github.com/taibuivan/navaadmin/internal/platform/postgres"
)

// PostgresRepository implements [Repository] over one category table.
type PostgresRepository struct {
	db    postgres.DB
	table schema.CategoryTable
}

// NewPostgresRepository binds a repository to the table of kind.
func NewPostgresRepository(db postgres.DB, kind Kind) *PostgresRepository {
	table := schema.Category
	if kind == KindMusic {
		table = schema.MusicCategory
	}
	return &PostgresRepository{db: db, table: table}
}

func (repository *PostgresRepository) selectColumns() string {
	t := repository.table
	return schema.List(t.ID, t.NameFa, t.NameEn, t.Slug, t.Icon, t.IsActive, t.SortOrder, t.CreatedAt, t.UpdatedAt)
}

func scanCategory(row pgx.Row) (*Category, error) {
	c := &Category{}
	err := row.Scan(&c.ID, &c.NameFa, &c.NameEn, &c.Slug, &c.Icon, &c.IsActive, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// List returns the categories matching filter ordered by sort_order.
func (repository *PostgresRepository) List(context context.Context, filter Filter) ([]*Category, error) {
	t := repository.table
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE 1=1`, repository.selectColumns(), t.Table)

	var args []any
	if filter.Active != nil {
		args = append(args, *filter.Active)
		query += fmt.Sprintf(` AND %s = $%d`, t.IsActive, len(args))
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		query += fmt.Sprintf(` AND (%s ILIKE $%d OR %s ILIKE $%d)`, t.NameFa, len(args), t.NameEn, len(args))
	}
	query += fmt.Sprintf(` ORDER BY %s ASC, %s ASC`, t.SortOrder, t.CreatedAt)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_categories")
	}
	defer rows.Close()

	categories := []*Category{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_category")
		}
		categories = append(categories, category)
	}

	return categories, dberr.Wrap(rows.Err(), "list_categories")
}

// Get fetches a category by ID.
func (repository *PostgresRepository) Get(context context.Context, id string) (*Category, error) {
	t := repository.table
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, repository.selectColumns(), t.Table, t.ID)

	category, err := scanCategory(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_category")
	}
	return category, nil
}

// Create inserts category at the end of the display order.
func (repository *PostgresRepository) Create(context context.Context, category *Category) error {
	t := repository.table
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, (SELECT COALESCE(MAX(%s), 0) + 1 FROM %s))
		RETURNING %s, %s, %s, %s
	`,
		t.Table, t.NameFa, t.NameEn, t.Slug, t.Icon, t.IsActive, t.SortOrder,
		t.SortOrder, t.Table,
		t.ID, t.SortOrder, t.CreatedAt, t.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		category.NameFa, category.NameEn, category.Slug, category.Icon, category.IsActive,
	).Scan(&category.ID, &category.SortOrder, &category.CreatedAt, &category.UpdatedAt)
	return dberr.Wrap(err, "create_category")
}

// Update writes the editable columns of category.
func (repository *PostgresRepository) Update(context context.Context, category *Category) error {
	t := repository.table
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		t.Table, t.NameFa, t.NameEn, t.Slug, t.Icon, t.IsActive, t.UpdatedAt,
		t.ID,
		t.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		category.ID, category.NameFa, category.NameEn, category.Slug, category.Icon, category.IsActive,
	).Scan(&category.UpdatedAt)
	return dberr.Wrap(err, "update_category")
}

// SetActive updates the is_active flag.
func (repository *PostgresRepository) SetActive(context context.Context, id string, active bool) error {
	t := repository.table
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`, t.Table, t.IsActive, t.UpdatedAt, t.ID)

	cmd, err := repository.db.Exec(context, query, id, active)
	if err != nil {
		return dberr.Wrap(err, "set_category_active")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

/*
Reorder rewrites sort_order for the given ids in one transaction.

The listed ids take positions 1..len(ids). Rows left out of the list follow
them, keeping their previous relative order, so no two rows share a position.
Unknown ids fail the whole reorder.
*/
func (repository *PostgresRepository) Reorder(context context.Context, ids []string) error {
	t := repository.table
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = NOW() WHERE %s = $2`, t.Table, t.SortOrder, t.UpdatedAt, t.ID)
	restQuery := fmt.Sprintf(`
		UPDATE %[1]s SET %[2]s = $1 + ranked.rank_no, %[3]s = NOW()
		FROM (
			SELECT %[4]s, ROW_NUMBER() OVER (ORDER BY %[2]s, %[5]s, %[4]s) AS rank_no
			FROM %[1]s
			WHERE %[4]s <> ALL($2::uuid[])
		) ranked
		WHERE %[1]s.%[4]s = ranked.%[4]s`,
		t.Table, t.SortOrder, t.UpdatedAt, t.ID, t.NameFa)

	return postgres.InTx(context, repository.db, func(transaction pgx.Tx) error {
		batch := &pgx.Batch{}
		for position, id := range ids {
			batch.Queue(query, position+1, id)
		}
		batch.Queue(restQuery, len(ids), ids)

		results := transaction.SendBatch(context, batch)
		for range ids {
			cmd, err := results.Exec()
			if err != nil {
				_ = results.Close()
				return dberr.Wrap(err, "reorder_categories")
			}
			if cmd.RowsAffected() == 0 {
				_ = results.Close()
				return dberr.ErrNotFound
			}
		}
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return dberr.Wrap(err, "reorder_categories_rest")
		}
		return dberr.Wrap(results.Close(), "reorder_categories")
	})
}

// Delete removes a category row.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	t := repository.table
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_category")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
