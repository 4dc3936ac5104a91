// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package persian normalizes Persian text typed through different keyboards.

The admin panel receives titles and numbers typed on Persian, Arabic and Latin
layouts. The same word can arrive with Arabic Yeh/Kaf, and the same number with
Persian (۱۲۳), Arabic-Indic (١٢٣) or ASCII digits.

Key Functions:
  - Normalize: canonical letters, ASCII digits, NFC, trimmed.
  - Digits: digits only, everything else untouched.
  - ParseInt: integer parsing that accepts any of the three digit sets.
*/
package persian

import (
	"strconv"
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// # Rune Mapping

func mapDigit(r rune) rune {
	switch {
	case r >= '۰' && r <= '۹':
		return '0' + (r - '۰')
	case r >= '٠' && r <= '٩':
		return '0' + (r - '٠')
	}
	return r
}

func mapLetter(r rune) rune {
	switch r {
	case 'ي', 'ى':
		return 'ی'
	case 'ك':
		return 'ک'
	case '‌':
		// ZWNJ becomes a plain space for slugs and search
		return ' '
	}
	return mapDigit(r)
}

// # Public API

// Normalize returns s with canonical Persian letters and ASCII digits.
func Normalize(s string) string {
	t := transform.Chain(norm.NFC, runes.Map(mapLetter))
	result, _, err := transform.String(t, s)
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(result)
}

// Digits converts Persian and Arabic-Indic digits in s to ASCII.
func Digits(s string) string {
	result, _, err := transform.String(runes.Map(mapDigit), s)
	if err != nil {
		return s
	}
	return result
}

// ParseInt parses a base-10 integer written with any supported digit set.
func ParseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(Digits(s)))
}
