package output

import (
	"fmt"
	"io"

	"github.com/jmylchreest/linkhist/internal/model"
)

// TokensFormatter outputs just the short tokens, one per line.
// Useful for piping to other commands (e.g., linkhist delete).
type TokensFormatter struct{}

// NewTokensFormatter creates a new tokens formatter.
func NewTokensFormatter() *TokensFormatter {
	return &TokensFormatter{}
}

// Format writes tokens to the writer, one per line.
func (f *TokensFormatter) Format(w io.Writer, records []model.UrlRecord) error {
	for _, r := range records {
		if _, err := fmt.Fprintln(w, r.ShortenedURL); err != nil {
			return err
		}
	}
	return nil
}
