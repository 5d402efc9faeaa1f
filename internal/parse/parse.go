// Package parse holds field extraction primitives for Form 5500 and
// Schedule A text fields. Filing extracts carry every value as free text;
// these helpers centralize the default-substitution rules so behavior is
// enumerable rather than implicit.
package parse

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// truthy is the literal set of values a filing indicator field may carry
// for "true". Matching is exact after trimming; anything else (including
// an absent field) reads as false.
var truthy = map[string]struct{}{
	"1":    {},
	"Y":    {},
	"y":    {},
	"TRUE": {},
	"True": {},
	"true": {},
}

// ParseBoolFlag reports whether a filing indicator field is set.
func ParseBoolFlag(s string) bool {
	_, ok := truthy[strings.TrimSpace(s)]
	return ok
}

// ParseCurrency parses a monetary text field. Empty or whitespace-only
// input is zero; malformed non-empty text is an error so the aggregation
// pipeline surfaces bad extracts instead of silently zeroing them.
func ParseCurrency(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, eris.Wrapf(err, "parse: currency value %q", s)
	}
	return v, nil
}

// ParseCount parses a covered-person or participant count. Empty is zero;
// malformed non-empty text is an error.
func ParseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, eris.Wrapf(err, "parse: count value %q", s)
	}
	return v, nil
}

// YearPrefix extracts the leading four-digit year from free-text date
// fields like "2023-01-01". Returns "" for short, empty, or non-numeric
// prefixes so invalid years stay out of candidate sets.
func YearPrefix(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 4 {
		return ""
	}
	p := s[:4]
	for i := 0; i < 4; i++ {
		if p[i] < '0' || p[i] > '9' {
			return ""
		}
	}
	return p
}

// Normalize lowercases and trims a sponsor/company name for matching.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// MapColumns builds a case-insensitive column name to index map.
func MapColumns(header []string) map[string]int {
	m := make(map[string]int, len(header))
	for i, col := range header {
		m[strings.ToLower(strings.TrimSpace(col))] = i
	}
	return m
}

// GetCol gets a column value by name from a tabular record, returning
// empty string if the column is absent or the row is short.
func GetCol(record []string, colIdx map[string]int, name string) string {
	idx, ok := colIdx[strings.ToLower(name)]
	if !ok || idx >= len(record) {
		return ""
	}
	return record[idx]
}
