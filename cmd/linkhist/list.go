package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/linkhist/internal/adapter/output"
	"github.com/jmylchreest/linkhist/internal/core"
)

var listOpts struct {
	format    string
	template  string
	separator string
	search    string
	limit     int
	noIndex   bool
	full      bool
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Print the URL history",
	Long: `Print the URL history, newest first.

Examples:
  # Human-readable listing
  linkhist list

  # Pick a link with a launcher and open it
  linkhist list -f dmenu | fuzzel -d | cut -d' ' -f1 | xargs linkhist preview

  # Machine-readable output
  linkhist list --format json

  # Custom template
  linkhist list --template '{{.ShortURL}} {{truncate 20 .Record.LongURL}}'`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listOpts.format, "format", "f", "plain",
		"Output format (plain, dmenu, json, yaml, tokens)")
	listCmd.Flags().StringVar(&listOpts.template, "template", "",
		"Custom Go template for plain/dmenu output")
	listCmd.Flags().StringVar(&listOpts.separator, "separator", " | ",
		"Field separator for dmenu output")
	listCmd.Flags().StringVarP(&listOpts.search, "search", "s", "",
		"Only show records whose token or URL contains this text")
	listCmd.Flags().IntVarP(&listOpts.limit, "limit", "n", 0,
		"Maximum number of records to show (0=unlimited)")
	listCmd.Flags().BoolVar(&listOpts.noIndex, "no-index", false,
		"Omit the 1-based index prefix")
	listCmd.Flags().BoolVar(&listOpts.full, "full", false,
		"Do not truncate original URLs")
}

func runList(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(listOpts.format)
	if err != nil {
		return err
	}

	records := core.Search(getHistory().Display(), listOpts.search, listOpts.limit)

	opts := output.DefaultFormatterOptions()
	opts.BaseURL = getConfig().FrontendURL
	opts.Truncate = getConfig().Display.Truncate
	if listOpts.full {
		opts.Truncate = 0
	}
	opts.Template = listOpts.template
	opts.Separator = listOpts.separator
	opts.ShowIndex = !listOpts.noIndex

	if err := output.NewFormatter(format, opts).Format(os.Stdout, records); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
