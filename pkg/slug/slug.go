// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug generates ASCII URL slugs from Persian or Latin names.
//
// # Usage
//
// Slugs are used as human-readable identifiers for categories and creators
// (e.g., "ketab-soti"). Persian input is normalized first, then transliterated
// by gosimple/slug.
package slug

import (
	"strings"

	gslug "github.com/gosimple/slug"

	"github.com/taibuivan/navaadmin/pkg/persian"
)

// From converts an arbitrary Unicode string into a URL-safe ASCII slug.
//
// # Transformation Pipeline
//
// 1. Normalizes Persian letters and digits.
// 2. Transliterates and lowercases via gosimple/slug.
// 3. Returns "" when nothing printable is left.
func From(s string) string {
	return gslug.Make(persian.Normalize(s))
}

// Prefer returns the slug of the first candidate that yields a non-empty slug.
//
// Categories and creators have a Latin name and a Persian name; the Latin one
// produces nicer slugs when present.
func Prefer(candidates ...string) string {
	for _, candidate := range candidates {
		if strings.TrimSpace(candidate) == "" {
			continue
		}
		if result := From(candidate); result != "" {
			return result
		}
	}
	return ""
}

// WithSuffix appends a short suffix, used when a slug is already taken.
func WithSuffix(base, suffix string) string {
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}
