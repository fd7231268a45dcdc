// Package api talks to the URL shortener backend.
package api

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// DeletePath is the backend route that marks a short URL as removed.
const DeletePath = "/api/deleteurl"

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

// RemoteError is returned when the backend answers with "error": true.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return "remote delete failed"
	}
	return "remote delete failed: " + e.Message
}

// deleteRequest is the body sent to DeletePath.
type deleteRequest struct {
	ShortURL string `json:"shortUrl"`
}

// DeleteResponse is the body DeletePath answers with.
type DeleteResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message,omitempty"`
}

// Options configures a Client.
type Options struct {
	BaseURL    string        // Backend origin; empty means relative to nothing ("/api/...")
	Timeout    time.Duration // Per-request timeout (0 = none)
	HTTPClient *http.Client  // Defaults to a client with Timeout
	Logger     *slog.Logger
}

// Client issues requests against the shortener backend.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a Client.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    httpClient,
		logger:  logger,
	}
}

// DeleteURL asks the backend to mark shortURL as deleted.
// A response with "error": true yields a *RemoteError. The HTTP status is
// not inspected; only the JSON body decides the outcome.
func (c *Client) DeleteURL(ctx context.Context, shortURL string) error {
	body, err := json.Marshal(deleteRequest{ShortURL: shortURL})
	if err != nil {
		return fmt.Errorf("encode delete request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.baseURL+DeletePath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build delete request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	requestID := newRequestID()
	if requestID != "" {
		req.Header.Set(RequestIDHeader, requestID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("delete %q: %w", shortURL, err)
	}
	defer resp.Body.Close()

	var result DeleteResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode delete response (status %d): %w", resp.StatusCode, err)
	}

	c.logger.Debug("delete url response",
		"short_url", shortURL,
		"request_id", requestID,
		"status", resp.StatusCode,
		"error", result.Error)

	if result.Error {
		return &RemoteError{Message: result.Message}
	}
	return nil
}

// newRequestID returns a fresh ULID, or "" if entropy is unavailable.
func newRequestID() string {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return ""
	}
	return id.String()
}
