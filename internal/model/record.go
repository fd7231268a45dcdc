// Package model defines the core data structures for linkhist.
package model

import (
	"errors"
	"strings"
)

// DefaultTruncateLength is the display budget for original URLs.
const DefaultTruncateLength = 30

// EmptyHistoryMessage is shown in place of an empty list.
const EmptyHistoryMessage = "No URLs found in history."

// ErrEmptyShortenedURL is returned when a record has no short token.
var ErrEmptyShortenedURL = errors.New("shortenedUrl cannot be empty")

// UrlRecord is a shortened-URL token paired with the long URL it resolves to.
// The JSON field names match the blob the shortening flow writes.
type UrlRecord struct {
	ShortenedURL string `json:"shortenedUrl" yaml:"shortenedUrl"`
	LongURL      string `json:"longUrl" yaml:"longUrl"`
}

// Validate checks that the record carries a token. The long URL is not
// inspected; its structure is never validated.
func (r UrlRecord) Validate() error {
	if r.ShortenedURL == "" {
		return ErrEmptyShortenedURL
	}
	return nil
}

// LongURLTruncated returns the long URL cut to maxLen characters.
func (r UrlRecord) LongURLTruncated(maxLen int) string {
	return Truncate(r.LongURL, maxLen)
}

// Truncate cuts s to maxLen characters and appends "..." when it was longer.
// Length is counted in runes. A maxLen <= 0 disables truncation.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}

// PreviewURL joins the public frontend base and a short token.
// Neither part is validated.
func PreviewURL(base, token string) string {
	return base + "/" + token
}

// Reversed returns a newest-first copy of records. The input is not modified.
func Reversed(records []UrlRecord) []UrlRecord {
	out := make([]UrlRecord, len(records))
	for i, r := range records {
		out[len(records)-1-i] = r
	}
	return out
}

// RemoveToken returns a copy of records without any record whose token
// equals token. Order of the remaining records is preserved.
func RemoveToken(records []UrlRecord, token string) []UrlRecord {
	out := make([]UrlRecord, 0, len(records))
	for _, r := range records {
		if r.ShortenedURL != token {
			out = append(out, r)
		}
	}
	return out
}

// Contains reports whether any record carries token.
func Contains(records []UrlRecord, token string) bool {
	for _, r := range records {
		if r.ShortenedURL == token {
			return true
		}
	}
	return false
}

// Matches reports whether the record contains query in either URL
// (case-insensitive).
func (r UrlRecord) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(r.ShortenedURL), q) ||
		strings.Contains(strings.ToLower(r.LongURL), q)
}
