package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/jmylchreest/linkhist/internal/model"
)

// DmenuFormatter formats records one per line for dmenu/rofi/fuzzel.
type DmenuFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewDmenuFormatter creates a new dmenu formatter.
func NewDmenuFormatter(opts FormatterOptions) *DmenuFormatter {
	return &DmenuFormatter{
		opts:     opts,
		template: parseTemplate("dmenu", opts.Template),
	}
}

// Format writes one line per record.
func (f *DmenuFormatter) Format(w io.Writer, records []model.UrlRecord) error {
	for i, r := range records {
		if _, err := fmt.Fprintln(w, f.formatLine(i+1, r)); err != nil {
			return err
		}
	}
	return nil
}

// formatLine renders index | token | original.
func (f *DmenuFormatter) formatLine(index int, r model.UrlRecord) string {
	data := newTemplateData(f.opts, index, r)

	if f.template != nil {
		var buf strings.Builder
		if err := f.template.Execute(&buf, data); err == nil {
			return buf.String()
		}
	}

	sep := f.opts.Separator
	if sep == "" {
		sep = " | "
	}

	var parts []string
	if f.opts.ShowIndex {
		parts = append(parts, fmt.Sprintf("%d", index))
	}
	parts = append(parts, r.ShortenedURL, data.Original)
	return strings.Join(parts, sep)
}
