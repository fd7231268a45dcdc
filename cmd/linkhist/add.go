package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/linkhist/internal/model"
)

var addCmd = &cobra.Command{
	Use:   "add <token> <long-url>",
	Short: "Append a shortened URL to the history",
	Long: `Append a record to the local history, as the shortening form does after
a successful shorten. Neither argument is validated beyond the token being
non-empty; duplicates are allowed.`,
	Args: cobra.ExactArgs(2),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	h := getHistory()

	r := model.UrlRecord{ShortenedURL: args[0], LongURL: args[1]}
	if err := h.Add(r); err != nil {
		return fmt.Errorf("failed to add record: %w", err)
	}
	fmt.Println(h.ShortURL(r.ShortenedURL))
	return nil
}
