package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var statusOpts struct {
	json bool
}

// StoreStatus summarises the local store.
type StoreStatus struct {
	Path      string   `json:"path"`
	Key       string   `json:"key"`
	Keys      []string `json:"keys,omitempty"`
	Records   int      `json:"records"`
	Bytes     int64    `json:"bytes"`
	Modified  string   `json:"modified,omitempty"`
	Frontend  string   `json:"frontend_url"`
	API       string   `json:"api_url"`
	Ephemeral bool     `json:"ephemeral,omitempty"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show store location and size",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolVar(&statusOpts.json, "json", false,
		"Output as JSON")
}

func runStatus(cmd *cobra.Command, args []string) error {
	st := collectStatus()

	if statusOpts.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	}

	if st.Ephemeral {
		fmt.Println("Store:    (in memory)")
	} else {
		fmt.Printf("Store:    %s [%s]\n", st.Path, st.Key)
		fmt.Printf("Size:     %s", humanize.Bytes(uint64(st.Bytes)))
		if st.Modified != "" {
			fmt.Printf(", modified %s", st.Modified)
		}
		fmt.Println()
		if len(st.Keys) > 0 {
			fmt.Printf("Keys:     %s\n", strings.Join(st.Keys, ", "))
		}
	}
	fmt.Printf("Records:  %s\n", humanize.Comma(int64(st.Records)))
	fmt.Printf("Frontend: %s\n", st.Frontend)
	fmt.Printf("API:      %s\n", st.API)
	return nil
}

func collectStatus() StoreStatus {
	c := getConfig()
	st := StoreStatus{
		Records:  getHistory().Len(),
		Frontend: c.FrontendURL,
		API:      c.APIURL,
	}

	if kvStore == nil {
		st.Ephemeral = true
		return st
	}

	st.Path = kvStore.Path()
	st.Key = kvStore.Key()
	if keys, err := kvStore.Keys(); err != nil {
		logger.Warn("failed to list store keys", "path", st.Path, "error", err)
	} else {
		st.Keys = keys
	}
	if info, err := os.Stat(st.Path); err == nil {
		st.Bytes = info.Size()
		st.Modified = humanize.Time(info.ModTime())
	}
	return st
}
