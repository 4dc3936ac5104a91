// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"sort"

	"github.com/taibuivan/navaadmin/pkg/persian"
)

// sentinelBase is where the numbers of unparsable order entries start.
const sentinelBase = 9999

// SortKey is the position an admin asked for.
//
// Valid keys sort before invalid ones whatever their Number, so a typed number
// never collides with a sentinel.
type SortKey struct {
	Valid bool

	// Number is the typed number, or sentinelBase plus the running count of
	// invalid entries.
	Number int
}

// Less orders valid keys first, then by Number.
func (key SortKey) Less(other SortKey) bool {
	if key.Valid != other.Valid {
		return key.Valid
	}
	return key.Number < other.Number
}

/*
SortKeys turns typed order numbers into sort keys.

A positive integer (Persian or Arabic-Indic digits accepted) is a valid key.
Anything else, including numbers too large for an int, is invalid and numbered
9999 + n, where n counts the invalid entries seen so far, so invalid entries
keep their relative order.
*/
func SortKeys(orders []string) []SortKey {
	keys := make([]SortKey, len(orders))
	invalid := 0
	for i, order := range orders {
		if n, err := persian.ParseInt(order); err == nil && n > 0 {
			keys[i] = SortKey{Valid: true, Number: n}
			continue
		}
		invalid++
		keys[i] = SortKey{Number: sentinelBase + invalid}
	}
	return keys
}

/*
ResolveOrder returns items rearranged by the typed order numbers.

Items are stably sorted by (sort key, original position); their final
chapter_index is their position in the result plus one.

Example:

	ResolveOrder([]string{"a", "b", "c"}, []string{"3", "invalid", "1"})
	// => ["c", "a", "b"]
*/
func ResolveOrder[T any](items []T, orders []string) []T {
	keys := SortKeys(orders)

	positions := make([]int, len(items))
	for i := range positions {
		positions[i] = i
	}
	sort.SliceStable(positions, func(a, b int) bool {
		return keys[positions[a]].Less(keys[positions[b]])
	})

	resolved := make([]T, len(items))
	for i, position := range positions {
		resolved[i] = items[position]
	}
	return resolved
}
