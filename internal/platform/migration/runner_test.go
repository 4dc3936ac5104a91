// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/navaadmin/internal/platform/migration"
)

func TestConvertToPgx5DSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@db.supabase.co:5432/postgres", "pgx5://u:p@db.supabase.co:5432/postgres"},
		{"postgresql://u:p@localhost/postgres", "pgx5://u:p@localhost/postgres"},
		{"pgx5://localhost/postgres", "pgx5://localhost/postgres"},
		{"host=localhost dbname=postgres", "host=localhost dbname=postgres"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, migration.ConvertToPgx5DSN(tt.in))
	}
}
