package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/linkhist/internal/model"
)

// YAMLFormatter formats records as a YAML sequence.
type YAMLFormatter struct {
	opts FormatterOptions
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(opts FormatterOptions) *YAMLFormatter {
	return &YAMLFormatter{opts: opts}
}

// Format writes records as YAML.
func (f *YAMLFormatter) Format(w io.Writer, records []model.UrlRecord) error {
	if records == nil {
		records = []model.UrlRecord{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return err
	}
	return enc.Close()
}
