// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package creator

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

// NewPostgresRepository constructs a PostgreSQL backed creator store.
func NewPostgresRepository(db postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var creatorColumns = schema.List(
	schema.Creator.ID, schema.Creator.DisplayName, schema.Creator.DisplayNameLatin, schema.Creator.CreatorType,
	schema.Creator.Bio, schema.Creator.AvatarURL, schema.Creator.Slug, schema.Creator.CreatedAt, schema.Creator.UpdatedAt,
)

func scanCreator(row pgx.Row) (*Creator, error) {
	c := &Creator{}
	err := row.Scan(&c.ID, &c.DisplayName, &c.DisplayNameLatin, &c.CreatorType, &c.Bio, &c.AvatarURL, &c.Slug, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// List returns one page of creators ordered by display name, with the total count.
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Creator, int, error) {
	where := " WHERE 1=1"
	var args []any

	if filter.Type != "" {
		args = append(args, filter.Type)
		where += fmt.Sprintf(" AND %s = $%d", schema.Creator.CreatorType, len(args))
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		where += fmt.Sprintf(" AND (%s ILIKE $%d OR %s ILIKE $%d)",
			schema.Creator.DisplayName, len(args), schema.Creator.DisplayNameLatin, len(args))
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.Creator.Table) + where
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_creators")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s`, creatorColumns, schema.Creator.Table) + where +
		fmt.Sprintf(" ORDER BY %s ASC LIMIT $%d OFFSET $%d", schema.Creator.DisplayName, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_creators")
	}
	defer rows.Close()

	creators := []*Creator{}
	for rows.Next() {
		c, err := scanCreator(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_creator")
		}
		creators = append(creators, c)
	}

	return creators, total, dberr.Wrap(rows.Err(), "list_creators")
}

// Get fetches a creator by ID.
func (repository *PostgresRepository) Get(context context.Context, id string) (*Creator, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, creatorColumns, schema.Creator.Table, schema.Creator.ID)

	c, err := scanCreator(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_creator")
	}
	return c, nil
}

// Create inserts c and fills its ID and timestamps.
func (repository *PostgresRepository) Create(context context.Context, c *Creator) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s, %s, %s
	`,
		schema.Creator.Table,
		schema.Creator.DisplayName, schema.Creator.DisplayNameLatin, schema.Creator.CreatorType, schema.Creator.Bio, schema.Creator.Slug,
		schema.Creator.ID, schema.Creator.CreatedAt, schema.Creator.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, c.DisplayName, c.DisplayNameLatin, c.CreatorType, c.Bio, c.Slug).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return dberr.Wrap(err, "create_creator")
}

// Update writes the editable columns of c.
func (repository *PostgresRepository) Update(context context.Context, c *Creator) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.Creator.Table,
		schema.Creator.DisplayName, schema.Creator.DisplayNameLatin, schema.Creator.CreatorType, schema.Creator.Bio, schema.Creator.UpdatedAt,
		schema.Creator.ID,
		schema.Creator.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, c.ID, c.DisplayName, c.DisplayNameLatin, c.CreatorType, c.Bio).Scan(&c.UpdatedAt)
	return dberr.Wrap(err, "update_creator")
}

// SetAvatar stores the public avatar URL of a creator.
func (repository *PostgresRepository) SetAvatar(context context.Context, id string, avatarURL *string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		schema.Creator.Table, schema.Creator.AvatarURL, schema.Creator.UpdatedAt, schema.Creator.ID)

	cmd, err := repository.db.Exec(context, query, id, avatarURL)
	if err != nil {
		return dberr.Wrap(err, "set_creator_avatar")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// Delete removes a creator row.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Creator.Table, schema.Creator.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_creator")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
