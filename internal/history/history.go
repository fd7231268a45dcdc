// Package history holds the URL history view state and its actions:
// hydrate from the local store, preview, delete and clear all.
package history

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jmylchreest/linkhist/internal/api"
	"github.com/jmylchreest/linkhist/internal/browser"
	"github.com/jmylchreest/linkhist/internal/model"
	"github.com/jmylchreest/linkhist/internal/store"
)

// Deleter marks a short URL as removed on the backend.
type Deleter interface {
	DeleteURL(ctx context.Context, shortURL string) error
}

// State is the lifecycle state of a History.
type State int

const (
	// StateUninitialized means Load has not run yet.
	StateUninitialized State = iota
	// StateHydrated means records reflect the store as of the last load.
	StateHydrated
)

// Options configures a History.
type Options struct {
	Storage store.Storage
	Deleter Deleter
	Opener  browser.Opener
	BaseURL string // Public frontend origin used for preview links
	Logger  *slog.Logger
}

// History is the in-memory view of the stored URL records.
type History struct {
	mu      sync.RWMutex
	records []model.UrlRecord
	state   State

	storage store.Storage
	deleter Deleter
	opener  browser.Opener
	baseURL string
	logger  *slog.Logger
}

// New creates a History. Call Load to hydrate it.
func New(opts Options) *History {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &History{
		records: []model.UrlRecord{},
		storage: opts.Storage,
		deleter: opts.Deleter,
		opener:  opts.Opener,
		baseURL: opts.BaseURL,
		logger:  logger,
	}
}

// Load hydrates the in-memory records from the store.
func (h *History) Load() error {
	records, err := h.storage.Read()
	if err != nil {
		return fmt.Errorf("read url history: %w", err)
	}
	if records == nil {
		records = []model.UrlRecord{}
	}

	h.mu.Lock()
	h.records = records
	h.state = StateHydrated
	h.mu.Unlock()
	return nil
}

// State returns the lifecycle state.
func (h *History) State() State {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state
}

// Len returns the number of hydrated records.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.records)
}

// Records returns a copy of the records in stored order (oldest first).
func (h *History) Records() []model.UrlRecord {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]model.UrlRecord, len(h.records))
	copy(out, h.records)
	return out
}

// Display returns the records newest first.
func (h *History) Display() []model.UrlRecord {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return model.Reversed(h.records)
}

// BaseURL returns the frontend origin used for preview links.
func (h *History) BaseURL() string {
	return h.baseURL
}

// ShortURL returns the public short link for token.
func (h *History) ShortURL(token string) string {
	return model.PreviewURL(h.baseURL, token)
}

// Preview opens the public short link for token and returns it.
func (h *History) Preview(token string) (string, error) {
	url := h.ShortURL(token)
	if h.opener == nil {
		return url, browser.ErrNoOpener
	}
	if err := h.opener.Open(url); err != nil {
		return url, err
	}
	h.logger.Debug("opened preview", "url", url)
	return url, nil
}

// Delete asks the backend to remove token and, on success, drops every
// record carrying it from the store and re-hydrates. On any failure the
// store and in-memory state are left untouched and the error is logged and
// returned.
func (h *History) Delete(ctx context.Context, token string) error {
	if h.deleter == nil {
		return errors.New("no delete endpoint configured")
	}

	if err := h.deleter.DeleteURL(ctx, token); err != nil {
		var remote *api.RemoteError
		if errors.As(err, &remote) {
			h.logger.Error("failed to delete URL", "short_url", token, "remote_message", remote.Message)
		} else {
			h.logger.Error("failed to delete URL", "short_url", token, "error", err)
		}
		return err
	}

	stored, err := h.storage.Read()
	if err != nil {
		return fmt.Errorf("read url history: %w", err)
	}
	if err := h.storage.Write(model.RemoveToken(stored, token)); err != nil {
		return fmt.Errorf("write url history: %w", err)
	}
	return h.Load()
}

// ClearAll wipes the whole store and empties the in-memory state. The
// caller owns the reload of its view; the TUI resets to a fresh list and
// re-reads the store.
func (h *History) ClearAll() error {
	err := h.storage.Clear()

	h.mu.Lock()
	h.records = []model.UrlRecord{}
	h.mu.Unlock()

	if err != nil {
		return fmt.Errorf("clear store: %w", err)
	}
	return nil
}

// Add appends a record to the store, as the shortening flow does, and
// re-hydrates.
func (h *History) Add(r model.UrlRecord) error {
	if err := r.Validate(); err != nil {
		return err
	}

	stored, err := h.storage.Read()
	if err != nil {
		return fmt.Errorf("read url history: %w", err)
	}
	if err := h.storage.Write(append(stored, r)); err != nil {
		return fmt.Errorf("write url history: %w", err)
	}
	return h.Load()
}
