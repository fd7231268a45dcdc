package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/jmylchreest/linkhist/internal/model"
)

// EmptyMessage is printed when there is nothing to list.
const EmptyMessage = model.EmptyHistoryMessage

// PlainFormatter formats records as labelled two-line entries.
type PlainFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) *PlainFormatter {
	return &PlainFormatter{
		opts:     opts,
		template: parseTemplate("plain", opts.Template),
	}
}

// Format writes records as plain text.
func (f *PlainFormatter) Format(w io.Writer, records []model.UrlRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, EmptyMessage)
		return err
	}
	for i, r := range records {
		if err := f.formatRecord(w, i+1, r); err != nil {
			return err
		}
	}
	return nil
}

func (f *PlainFormatter) formatRecord(w io.Writer, index int, r model.UrlRecord) error {
	data := newTemplateData(f.opts, index, r)

	if f.template != nil {
		if err := f.template.Execute(w, data); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w)
		return err
	}

	var sb strings.Builder
	if f.opts.ShowIndex {
		sb.WriteString(fmt.Sprintf("[%d] ", index))
	}
	sb.WriteString("Shortened URL: " + data.ShortURL + "\n")
	if f.opts.ShowIndex {
		sb.WriteString(strings.Repeat(" ", len(fmt.Sprintf("[%d] ", index))))
	}
	sb.WriteString("Original URL: " + data.Original + "\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
