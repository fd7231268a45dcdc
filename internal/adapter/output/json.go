package output

import (
	"encoding/json"
	"io"

	"github.com/jmylchreest/linkhist/internal/model"
)

// JSONFormatter formats records as a JSON array using the stored field names.
type JSONFormatter struct {
	opts FormatterOptions
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(opts FormatterOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Format writes records as a JSON array. An empty history is "[]".
func (f *JSONFormatter) Format(w io.Writer, records []model.UrlRecord) error {
	if records == nil {
		records = []model.UrlRecord{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(records)
}
