package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend records delete calls and answers with a canned response.
type fakeBackend struct {
	mu       sync.Mutex
	calls    []string
	headers  []http.Header
	status   int
	response any
	rawBody  string
	delay    time.Duration
}

func (b *fakeBackend) handler() http.Handler {
	r := chi.NewRouter()
	r.Patch(DeletePath, func(w http.ResponseWriter, r *http.Request) {
		var req deleteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		b.mu.Lock()
		b.calls = append(b.calls, req.ShortURL)
		b.headers = append(b.headers, r.Header.Clone())
		status, response, raw, delay := b.status, b.response, b.rawBody, b.delay
		b.mu.Unlock()

		if delay > 0 {
			time.Sleep(delay)
		}
		if raw != "" {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(raw))
			return
		}
		if status != 0 {
			render.Status(r, status)
		}
		render.JSON(w, r, response)
	})
	return r
}

func newTestServer(t *testing.T, b *fakeBackend) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(b.handler())
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_DeleteURL_Success(t *testing.T) {
	b := &fakeBackend{response: DeleteResponse{Error: false, Message: "deleted"}}
	srv := newTestServer(t, b)

	c := NewClient(Options{BaseURL: srv.URL})
	err := c.DeleteURL(context.Background(), "abc")
	require.NoError(t, err)

	require.Len(t, b.calls, 1)
	assert.Equal(t, "abc", b.calls[0])
	assert.Equal(t, "application/json", b.headers[0].Get("Content-Type"))
	assert.Len(t, b.headers[0].Get(RequestIDHeader), 26)
}

func TestClient_DeleteURL_TrailingSlashBase(t *testing.T) {
	b := &fakeBackend{response: DeleteResponse{}}
	srv := newTestServer(t, b)

	c := NewClient(Options{BaseURL: srv.URL + "/"})
	require.NoError(t, c.DeleteURL(context.Background(), "abc"))
	assert.Len(t, b.calls, 1)
}

func TestClient_DeleteURL_RemoteError(t *testing.T) {
	b := &fakeBackend{response: DeleteResponse{Error: true, Message: "URL not found"}}
	srv := newTestServer(t, b)

	c := NewClient(Options{BaseURL: srv.URL})
	err := c.DeleteURL(context.Background(), "missing")

	var remote *RemoteError
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, "URL not found", remote.Message)
	assert.Contains(t, err.Error(), "URL not found")
}

func TestClient_DeleteURL_StatusIgnoredWhenBodyOK(t *testing.T) {
	b := &fakeBackend{status: http.StatusInternalServerError, response: DeleteResponse{Error: false}}
	srv := newTestServer(t, b)

	c := NewClient(Options{BaseURL: srv.URL})
	assert.NoError(t, c.DeleteURL(context.Background(), "abc"))
}

func TestClient_DeleteURL_InvalidJSON(t *testing.T) {
	b := &fakeBackend{status: http.StatusOK, rawBody: "<html>oops</html>"}
	srv := newTestServer(t, b)

	c := NewClient(Options{BaseURL: srv.URL})
	err := c.DeleteURL(context.Background(), "abc")
	require.Error(t, err)

	var remote *RemoteError
	assert.False(t, errors.As(err, &remote))
	assert.Contains(t, err.Error(), "decode delete response")
}

func TestClient_DeleteURL_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(Options{BaseURL: url})
	err := c.DeleteURL(context.Background(), "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `delete "abc"`)
}

func TestClient_DeleteURL_Timeout(t *testing.T) {
	b := &fakeBackend{response: DeleteResponse{}, delay: 200 * time.Millisecond}
	srv := newTestServer(t, b)

	c := NewClient(Options{BaseURL: srv.URL, Timeout: 20 * time.Millisecond})
	assert.Error(t, c.DeleteURL(context.Background(), "abc"))
}

func TestRemoteError_Error(t *testing.T) {
	assert.Equal(t, "remote delete failed", (&RemoteError{}).Error())
	assert.Equal(t, "remote delete failed: nope", (&RemoteError{Message: "nope"}).Error())
}
