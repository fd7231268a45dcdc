package main

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/linkhist/internal/config"
	"github.com/jmylchreest/linkhist/internal/model"
	"github.com/jmylchreest/linkhist/internal/store"
)

func TestLaunchesTUI(t *testing.T) {
	root := &cobra.Command{Use: "linkhist"}
	tuiSub := &cobra.Command{Use: "tui"}
	listSub := &cobra.Command{Use: "list"}
	root.AddCommand(tuiSub, listSub)

	assert.True(t, launchesTUI(root))
	assert.True(t, launchesTUI(tuiSub))
	assert.False(t, launchesTUI(listSub))
}

func useGlobals(t *testing.T, s store.Storage, kv *store.KVFile) {
	t.Helper()
	prevCfg, prevHist, prevKV := cfg, hist, kvStore
	t.Cleanup(func() { cfg, hist, kvStore = prevCfg, prevHist, prevKV })

	cfg = config.DefaultConfig()
	cfg.FrontendURL = "https://short.ly"
	kvStore = kv
	hist = newHistory(cfg, s, slog.Default())
	require.NoError(t, hist.Load())
}

func TestNewHistory_UsesFrontendForLinks(t *testing.T) {
	useGlobals(t, store.NewMemory(), nil)
	assert.Equal(t, "https://short.ly/abc", getHistory().ShortURL("abc"))
}

func TestCollectStatus_Ephemeral(t *testing.T) {
	useGlobals(t, store.NewMemory(model.UrlRecord{ShortenedURL: "abc", LongURL: "https://go.dev"}), nil)

	st := collectStatus()
	assert.True(t, st.Ephemeral)
	assert.Equal(t, 1, st.Records)
	assert.Empty(t, st.Path)
}

func TestCollectStatus_KVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "localstorage.json")
	kv, err := store.NewKVFile(path, "", nil)
	require.NoError(t, err)
	require.NoError(t, kv.Write([]model.UrlRecord{{ShortenedURL: "abc", LongURL: "https://go.dev"}}))

	useGlobals(t, kv, kv)

	st := collectStatus()
	assert.False(t, st.Ephemeral)
	assert.Equal(t, path, st.Path)
	assert.Equal(t, store.DefaultKey, st.Key)
	assert.Equal(t, 1, st.Records)
	assert.Equal(t, []string{store.DefaultKey}, st.Keys)
	assert.Positive(t, st.Bytes)
	assert.NotEmpty(t, st.Modified)
}

func TestWriteDefaultConfig(t *testing.T) {
	t.Setenv(config.EnvFrontendURL, "")
	t.Setenv(config.EnvAPIURL, "")
	path := filepath.Join(t.TempDir(), "linkhist", "config.toml")

	require.NoError(t, writeDefaultConfig(path, false))

	loaded, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), loaded)

	err = writeDefaultConfig(path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, writeDefaultConfig(path, true))
}
