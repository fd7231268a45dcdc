// Package main provides the CLI entrypoint for linkhist.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/linkhist/internal/api"
	"github.com/jmylchreest/linkhist/internal/browser"
	"github.com/jmylchreest/linkhist/internal/config"
	"github.com/jmylchreest/linkhist/internal/history"
	"github.com/jmylchreest/linkhist/internal/store"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		storePath  string
		configPath string
		ephemeral  bool
	}
	logger  *slog.Logger
	logFile *os.File

	// kvStore is nil for --ephemeral runs
	kvStore *store.KVFile
	storage store.Storage
	hist    *history.History
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "linkhist",
	Short: "History of shortened URLs",
	Long: `linkhist browses the history of URLs you have shortened.

The history lives in a local key-value store. Entries are listed newest
first and can be previewed in the browser, deleted from the shortener
backend, or cleared all at once.

Running linkhist without a subcommand launches the interactive TUI.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load configuration
		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := config.EnsureDataDir(); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}

		// The TUI owns the terminal, so its logs go to a file.
		if launchesTUI(cmd) {
			if err := setupFileLogger(config.LogPath()); err != nil {
				return fmt.Errorf("failed to open log file: %w", err)
			}
		} else {
			setupLogger(os.Stderr)
		}

		if globalOpts.ephemeral {
			storage = store.NewMemory()
		} else {
			storePath := globalOpts.storePath
			if storePath == "" {
				storePath = cfg.StorePath()
			}
			kvStore, err = store.NewKVFile(storePath, cfg.Store.Key, logger)
			if err != nil {
				return fmt.Errorf("failed to open store: %w", err)
			}
			storage = kvStore
		}

		hist = newHistory(cfg, storage, logger)
		if err := hist.Load(); err != nil {
			logger.Warn("failed to hydrate history from store", "error", err)
		}

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logFile != nil {
			defer logFile.Close()
		}
		if kvStore != nil {
			return kvStore.Close()
		}
		return nil
	},
	// Default to TUI when no subcommand is provided
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.storePath, "store", "",
		"Path to the local store (default: ~/.local/share/linkhist/localstorage.json)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/linkhist/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&globalOpts.ephemeral, "ephemeral", false,
		"Keep history in memory only for this run")
}

// launchesTUI reports whether cmd ends up in the interactive UI.
func launchesTUI(cmd *cobra.Command) bool {
	return !cmd.HasParent() || cmd.Name() == "tui"
}

// setupLogger configures the global slog logger.
func setupLogger(w io.Writer) {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(w, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// setupFileLogger points the global logger at path.
func setupFileLogger(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return err
	}
	logFile = f
	setupLogger(f)
	return nil
}

// newHistory wires the history view to its store, the delete endpoint and
// the browser opener.
func newHistory(c *config.Config, s store.Storage, l *slog.Logger) *history.History {
	client := api.NewClient(api.Options{
		BaseURL: c.APIURL,
		Timeout: c.Timeout(),
		Logger:  l,
	})

	return history.New(history.Options{
		Storage: s,
		Deleter: client,
		Opener:  browser.NewCommandOpener(c.Browser.Command),
		BaseURL: c.FrontendURL,
		Logger:  l,
	})
}

// getHistory returns the global history instance.
func getHistory() *history.History {
	return hist
}

// getConfig returns the global config instance.
func getConfig() *config.Config {
	return cfg
}
