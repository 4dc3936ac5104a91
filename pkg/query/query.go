// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses multi-value list filters such as "?status=draft,submitted".
package query

import (
	"slices"
	"strings"
)

// StringSlice parses a single comma-separated query string
// into a trimmed slice of strings.
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}
	var res []string
	for _, v := range strings.Split(val, ",") {
		clean := strings.TrimSpace(v)
		if clean != "" {
			res = append(res, clean)
		}
	}
	return res
}

// Allowed parses val like [StringSlice] and keeps only values found in allowed.
func Allowed(val string, allowed []string) []string {
	var res []string
	for _, v := range StringSlice(val) {
		if slices.Contains(allowed, v) && !slices.Contains(res, v) {
			res = append(res, v)
		}
	}
	return res
}
