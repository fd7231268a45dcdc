package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/linkhist/internal/store"
	"github.com/jmylchreest/linkhist/internal/theme"
	"github.com/jmylchreest/linkhist/internal/tui"
)

var tuiOpts struct {
	theme   string
	noWatch bool
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive history browser",
	Long: `Launch the interactive terminal user interface for the URL history.

The TUI provides:
  - Newest-first list of shortened URLs
  - Preview of a short link in the browser
  - Delete from the shortener backend
  - Clear all history (with confirmation)
  - Search and detail view with the full original URL
  - Live reload when another process writes the store

Key bindings:
  j/k, ↑/↓    Navigate list
  enter, p    Preview short URL in the browser
  v           View full details
  c           Copy short URL to clipboard
  d, x        Delete URL
  C           Clear all history
  /           Search
  t           Cycle theme (system, dark, light)
  r           Reload from store
  ?           Show help
  q           Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	tuiCmd.Flags().StringVar(&tuiOpts.theme, "theme", "",
		"Theme override (system, dark, light)")
	tuiCmd.Flags().BoolVar(&tuiOpts.noWatch, "no-watch", false,
		"Do not reload when the store file changes")
}

func runTUI(cmd *cobra.Command, args []string) error {
	c := getConfig()

	pref := c.ThemePreference()
	if tuiOpts.theme != "" {
		p, err := theme.ParsePreference(tuiOpts.theme)
		if err != nil {
			return err
		}
		pref = p
	}

	var changes <-chan struct{}
	if kvStore != nil && !tuiOpts.noWatch {
		fw, err := store.NewFileWatcher(kvStore.Path())
		if err != nil {
			logger.Warn("failed to create store watcher", "error", err)
		} else if err := fw.Start(); err != nil {
			logger.Warn("failed to watch store", "path", kvStore.Path(), "error", err)
			_ = fw.Stop()
		} else {
			defer func() { _ = fw.Stop() }()
			changes = fw.Events()
		}
	}

	// Query the terminal background before bubbletea owns stdin.
	resolver := theme.NewResolver(pref)
	resolver.Prime()

	return tui.Run(tui.RunOptions{
		Config:   c,
		History:  getHistory(),
		Resolver: resolver,
		Changes:  changes,
	})
}
