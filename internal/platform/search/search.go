// Package search implements the case-insensitive substring filter shared by
// the patient directory and the prescription template store.
package search

import "strings"

// Normalize trims surrounding whitespace and lower-cases a query.
func Normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Matches reports whether any of fields contains query as a case-insensitive
// substring. An empty query matches everything.
func Matches(query string, fields ...string) bool {
	q := Normalize(query)
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// Filter returns the items whose searchable fields contain query, in their
// original order. The input slice is never modified; an empty query returns a
// copy of the whole collection.
func Filter[T any](query string, items []T, fields func(T) []string) []T {
	out := make([]T, 0, len(items))
	q := Normalize(query)
	for _, item := range items {
		if q == "" || Matches(q, fields(item)...) {
			out = append(out, item)
		}
	}
	return out
}
