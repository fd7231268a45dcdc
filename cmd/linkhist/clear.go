package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var clearOpts struct {
	yes bool
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Wipe the local history",
	Long: `Wipe the entire local store, including keys other than the history.

Nothing is deleted on the shortener backend.`,
	RunE: runClear,
}

func init() {
	rootCmd.AddCommand(clearCmd)

	clearCmd.Flags().BoolVarP(&clearOpts.yes, "yes", "y", false,
		"Do not ask for confirmation")
}

func runClear(cmd *cobra.Command, args []string) error {
	h := getHistory()

	if !clearOpts.yes {
		fmt.Printf("Clear %d entries from the local history? [y/N] ", h.Len())
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if !strings.EqualFold(strings.TrimSpace(answer), "y") {
			fmt.Println("Aborted")
			return nil
		}
	}

	if err := h.ClearAll(); err != nil {
		return err
	}
	fmt.Println("History cleared")
	return nil
}
