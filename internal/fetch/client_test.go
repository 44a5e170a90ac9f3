package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khdl/khinsider-dl/internal/khinsider"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(nil,
		WithHTTPClient(srv.Client()),
		WithBackoff(time.Millisecond),
	)
	return client, srv
}

func TestFetchPage_OK(t *testing.T) {
	client, srv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><h2>Test Album</h2></html>"))
	}))

	html, err := client.FetchPage(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, html, "Test Album")
}

func TestFetchPage_NotFoundMarker(t *testing.T) {
	var attempts int32
	client, srv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.Write([]byte("<html>Ooops! This page does not exist</html>"))
	}))

	_, err := client.FetchPage(context.Background(), srv.URL)
	require.ErrorIs(t, err, khinsider.ErrNotFound)
	assert.EqualValues(t, 1, atomic.LoadInt32(&attempts), "not-found must not be retried")
}

func TestFetchPage_404NotRetried(t *testing.T) {
	var attempts int32
	client, srv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.FetchPage(context.Background(), srv.URL)
	require.ErrorIs(t, err, khinsider.ErrNotFound)
	assert.EqualValues(t, 1, atomic.LoadInt32(&attempts))
}

func TestDownload_RetriesServerErrors(t *testing.T) {
	var attempts int32
	client, srv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("audio-bytes"))
	}))

	data, err := client.Download(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, []byte("audio-bytes"), data)
	assert.EqualValues(t, 3, atomic.LoadInt32(&attempts))
}

func TestDownload_ExhaustsRetries(t *testing.T) {
	var attempts int32
	client, srv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.Download(context.Background(), srv.URL)
	require.Error(t, err)

	var se *StatusError
	require.ErrorAs(t, err, &se, "last transient error surfaced unchanged")
	assert.Equal(t, http.StatusInternalServerError, se.Code)
	assert.EqualValues(t, defaultMaxAttempts, atomic.LoadInt32(&attempts))
}

func TestDownload_ClientErrorNotRetried(t *testing.T) {
	var attempts int32
	client, srv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusForbidden)
	}))

	_, err := client.Download(context.Background(), srv.URL)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusForbidden, se.Code)
	assert.EqualValues(t, 1, atomic.LoadInt32(&attempts))
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"not found", khinsider.ErrNotFound, false},
		{"invalid url", khinsider.ErrInvalidURL, false},
		{"context canceled", context.Canceled, false},
		{"500 status", &StatusError{Code: 500}, true},
		{"503 status", &StatusError{Code: 503}, true},
		{"404 status", &StatusError{Code: 404}, false},
		{"403 status", &StatusError{Code: 403}, false},
		{"generic error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}
