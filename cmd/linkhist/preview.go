package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/linkhist/internal/core"
)

var previewOpts struct {
	print bool
}

var previewCmd = &cobra.Command{
	Use:   "preview <token|index>",
	Short: "Open a short URL in the browser",
	Long: `Open <frontend_url>/<token> in a new browser window.

A number that is not itself a known token selects the entry at that
1-based position of "linkhist list". Other tokens are opened as given.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().BoolVar(&previewOpts.print, "print", false,
		"Print the URL instead of opening it")
}

func runPreview(cmd *cobra.Command, args []string) error {
	h := getHistory()
	token := core.ResolveToken(h.Display(), args[0])

	if previewOpts.print {
		fmt.Println(h.ShortURL(token))
		return nil
	}

	url, err := h.Preview(token)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	fmt.Println(url)
	return nil
}
