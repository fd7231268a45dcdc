package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/linkhist/internal/api"
	"github.com/jmylchreest/linkhist/internal/core"
	"github.com/jmylchreest/linkhist/internal/model"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <token|index>...",
	Aliases: []string{"rm"},
	Short:   "Delete short URLs from the backend and the history",
	Long: `Ask the shortener backend to delete each token and, when it agrees,
remove every history entry carrying that token.

A token the backend refuses stays in the history. Numbers resolve to
positions of "linkhist list" as for preview.

Examples:
  # Delete one entry
  linkhist delete abc123

  # Delete the oldest entry
  linkhist list -f tokens | tail -n1 | xargs linkhist delete`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	h := getHistory()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Resolve every index up front so earlier deletes do not shift later ones.
	display := h.Display()
	tokens := make([]string, len(args))
	for i, arg := range args {
		tokens[i] = core.ResolveToken(display, arg)
	}

	var failed int
	for _, token := range tokens {
		if !model.Contains(h.Records(), token) {
			logger.Debug("token not in history", "token", token)
		}

		if err := h.Delete(ctx, token); err != nil {
			failed++
			var remote *api.RemoteError
			if errors.As(err, &remote) {
				fmt.Printf("%s: %s\n", token, remote.Message)
			} else {
				fmt.Printf("%s: %v\n", token, err)
			}
			continue
		}
		fmt.Printf("Deleted %s\n", token)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d deletes failed", failed, len(tokens))
	}
	return nil
}
