package core

// convert.go turns raw CSV cells into column values.
//
// Cells are only trimmed; an empty result is stored as NULL so the database
// never holds empty strings.

import (
	"database/sql"
	"strings"
)

// NullText converts a string to sql.NullString.
// Returns invalid if the string is empty or only whitespace.
func NullText(s string) sql.NullString {
	s = strings.TrimSpace(s)
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

// MakeHeaderIndex maps trimmed header names to their column position.
// Names are case-sensitive; the first of duplicated names wins.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		key := strings.TrimSpace(h)
		if _, exists := idx[key]; exists {
			continue
		}
		idx[key] = i
	}
	return idx
}

// getCell returns the cell for column name, or "" when the column is
// missing or the row is short.
func getCell(row []string, idx HeaderIndex, name string) string {
	pos, ok := idx[name]
	if !ok || pos >= len(row) {
		return ""
	}
	return row[pos]
}
