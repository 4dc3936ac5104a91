// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package schema is the registry of table and column names used in SQL.

Repositories build queries with fmt.Sprintf from these values instead of
string literals, so a renamed column is a one-line change here.

The tables belong to the Supabase project of the listener app; this service
reads and writes them but the listener app owns most of the data.
*/
package schema

import "strings"

// List joins columns with ", " for SELECT and INSERT column lists.
func List(columns ...string) string {
	return strings.Join(columns, ", ")
}

// Qualified prefixes every column with alias ("a.id, a.title_fa").
func Qualified(alias string, columns ...string) string {
	qualified := make([]string, len(columns))
	for i, column := range columns {
		qualified[i] = alias + "." + column
	}
	return strings.Join(qualified, ", ")
}
