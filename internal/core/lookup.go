// Package core provides lookup and search over URL history records.
package core

import (
	"strconv"
	"strings"

	"github.com/jmylchreest/linkhist/internal/model"
)

// LookupByToken finds the first record carrying token.
// Returns nil if not found.
func LookupByToken(records []model.UrlRecord, token string) *model.UrlRecord {
	for i := range records {
		if records[i].ShortenedURL == token {
			return &records[i]
		}
	}
	return nil
}

// LookupByIndex finds a record by its index (1-based for user-friendliness).
// Returns nil if index is out of bounds.
func LookupByIndex(records []model.UrlRecord, index int) *model.UrlRecord {
	// Convert to 0-based
	idx := index - 1
	if idx < 0 || idx >= len(records) {
		return nil
	}
	return &records[idx]
}

// ResolveToken maps a command-line argument to a token. An argument that
// is a known token is returned as is; otherwise a positive integer selects
// the record at that 1-based index of records. Anything else passes
// through unchanged.
func ResolveToken(records []model.UrlRecord, arg string) string {
	arg = strings.TrimSpace(arg)
	if LookupByToken(records, arg) != nil {
		return arg
	}
	if idx, err := strconv.Atoi(arg); err == nil {
		if r := LookupByIndex(records, idx); r != nil {
			return r.ShortenedURL
		}
	}
	return arg
}

// Search returns the records matching term in token or long URL, capped at
// limit (0 = unlimited). Case-insensitive substring match.
func Search(records []model.UrlRecord, term string, limit int) []model.UrlRecord {
	result := make([]model.UrlRecord, 0, len(records))
	for _, r := range records {
		if !r.Matches(term) {
			continue
		}
		result = append(result, r)
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result
}
