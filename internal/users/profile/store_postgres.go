// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import (
	"context"
	"fmt"

	"github.com/taibuivan/navaadmin/internal/platform/database/schema"
	"github.com/taibuivan/navaadmin/internal/platform/dberr"
	"github.com/taibuivan/navaadmin/internal/platform/postgres"
	"github.com/taibuivan/navaadmin/internal/platform/sec"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.DB
}

// NewPostgresRepository constructs a PostgreSQL backed profile store.
func NewPostgresRepository(db postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var profileColumns = schema.List(
	schema.Profile.ID, schema.Profile.DisplayName, schema.Profile.Email, schema.Profile.AvatarURL,
	schema.Profile.Role, schema.Profile.IsDisabled, schema.Profile.CreatedAt,
)

/*
List returns a page of profiles, newest first.

Parameters:
  - context: context.Context
  - filter: Filter (role, disabled flag, search on name and email)
  - limit, offset: int

Returns:
  - []*Profile: The page
  - int: Total matching rows
  - error: Wrapped database errors
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Profile, int, error) {
	where := " WHERE 1=1"
	var args []any

	if filter.Role != "" {
		args = append(args, filter.Role)
		where += fmt.Sprintf(" AND %s = $%d", schema.Profile.Role, len(args))
	}
	if filter.Disabled != nil {
		args = append(args, *filter.Disabled)
		where += fmt.Sprintf(" AND %s = $%d", schema.Profile.IsDisabled, len(args))
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		where += fmt.Sprintf(" AND (%s ILIKE $%d OR %s ILIKE $%d)",
			schema.Profile.DisplayName, len(args), schema.Profile.Email, len(args))
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.Profile.Table) + where
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_profiles")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s`, profileColumns, schema.Profile.Table) + where +
		fmt.Sprintf(" ORDER BY %s DESC LIMIT $%d OFFSET $%d", schema.Profile.CreatedAt, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_profiles")
	}
	defer rows.Close()

	profiles := []*Profile{}
	for rows.Next() {
		p := &Profile{}
		if err := rows.Scan(&p.ID, &p.DisplayName, &p.Email, &p.AvatarURL, &p.Role, &p.IsDisabled, &p.CreatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_profile")
		}
		profiles = append(profiles, p)
	}

	return profiles, total, dberr.Wrap(rows.Err(), "list_profiles")
}

// Get fetches a profile by ID.
func (repository *PostgresRepository) Get(context context.Context, id string) (*Profile, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, profileColumns, schema.Profile.Table, schema.Profile.ID)

	p := &Profile{}
	err := repository.db.QueryRow(context, query, id).
		Scan(&p.ID, &p.DisplayName, &p.Email, &p.AvatarURL, &p.Role, &p.IsDisabled, &p.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "get_profile")
	}
	return p, nil
}

// GetAccess fetches only the role and disabled flag used by the auth middleware.
func (repository *PostgresRepository) GetAccess(context context.Context, id string) (*Access, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1`,
		schema.Profile.Role, schema.Profile.IsDisabled, schema.Profile.Table, schema.Profile.ID)

	access := &Access{}
	if err := repository.db.QueryRow(context, query, id).Scan(&access.Role, &access.Disabled); err != nil {
		return nil, dberr.Wrap(err, "get_profile_access")
	}
	return access, nil
}

// SetRole changes the role of a profile.
func (repository *PostgresRepository) SetRole(context context.Context, id string, role sec.UserRole) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		schema.Profile.Table, schema.Profile.Role, schema.Profile.UpdatedAt, schema.Profile.ID)

	cmd, err := repository.db.Exec(context, query, id, role)
	if err != nil {
		return dberr.Wrap(err, "set_profile_role")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// SetDisabled blocks or unblocks a profile.
func (repository *PostgresRepository) SetDisabled(context context.Context, id string, disabled bool) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		schema.Profile.Table, schema.Profile.IsDisabled, schema.Profile.UpdatedAt, schema.Profile.ID)

	cmd, err := repository.db.Exec(context, query, id, disabled)
	if err != nil {
		return dberr.Wrap(err, "set_profile_disabled")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
