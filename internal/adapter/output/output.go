// Package output provides output formatters for URL history records.
package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/jmylchreest/linkhist/internal/model"
)

// Formatter formats records for output. Records arrive in display order.
type Formatter interface {
	Format(w io.Writer, records []model.UrlRecord) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain  FormatType = "plain"
	FormatDmenu  FormatType = "dmenu"
	FormatJSON   FormatType = "json"
	FormatYAML   FormatType = "yaml"
	FormatTokens FormatType = "tokens"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (FormatType, error) {
	switch f := FormatType(strings.ToLower(s)); f {
	case FormatPlain, FormatDmenu, FormatJSON, FormatYAML, FormatTokens:
		return f, nil
	case "":
		return FormatPlain, nil
	default:
		return "", fmt.Errorf("unknown format %q (want plain, dmenu, json, yaml or tokens)", s)
	}
}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts)
	case FormatYAML:
		return NewYAMLFormatter(opts)
	case FormatDmenu:
		return NewDmenuFormatter(opts)
	case FormatTokens:
		return NewTokensFormatter()
	case FormatPlain:
		fallthrough
	default:
		return NewPlainFormatter(opts)
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	BaseURL   string // Frontend origin for full short links
	Truncate  int    // Original URL budget (0 = unlimited)
	Template  string // Custom template for plain/dmenu format
	ShowIndex bool   // Show 1-based index prefix
	Separator string // Field separator for dmenu format
}

// DefaultFormatterOptions returns sensible defaults.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		Truncate:  model.DefaultTruncateLength,
		ShowIndex: true,
		Separator: " | ",
	}
}

// templateData is what custom templates are executed against.
type templateData struct {
	Index    int
	Record   model.UrlRecord
	ShortURL string
	Original string // truncated long URL
}

func newTemplateData(opts FormatterOptions, index int, r model.UrlRecord) templateData {
	return templateData{
		Index:    index,
		Record:   r,
		ShortURL: model.PreviewURL(opts.BaseURL, r.ShortenedURL),
		Original: model.Truncate(r.LongURL, opts.Truncate),
	}
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"truncate": func(n int, s string) string { return model.Truncate(s, n) },
		"upper":    strings.ToUpper,
		"lower":    strings.ToLower,
	}
}

// parseTemplate returns nil when text is empty or does not parse.
func parseTemplate(name, text string) *template.Template {
	if text == "" {
		return nil
	}
	tmpl, err := template.New(name).Funcs(templateFuncs()).Parse(text)
	if err != nil {
		return nil
	}
	return tmpl
}
