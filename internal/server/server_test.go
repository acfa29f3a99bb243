package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-petcare/internal/config"
)

const sampleFeed = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nBEGIN:VEVENT\r\nUID:1741597200000-a1b2c3@go-petcare\r\nSUMMARY:Vaccine\r\nEND:VEVENT\r\nEND:VCALENDAR\r\n"

func get(t *testing.T, h http.Handler, method, path string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// -----------------------------------------------------------------------------
// Handler
// -----------------------------------------------------------------------------

func TestHandler_ServesFeed(t *testing.T) {
	srv := NewCalendarServer("0")
	srv.Update([]byte(sampleFeed))

	w := get(t, http.HandlerFunc(srv.handleCalendarRequest), http.MethodGet, config.RouteFeed, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, config.MimeTextCalendar, w.Header().Get(config.HeaderContentType))
	assert.Equal(t, config.MimeNoSniff, w.Header().Get(config.HeaderXContentType))
	assert.Equal(t, config.CacheControlPrivate, w.Header().Get(config.HeaderCacheControl))
	assert.NotEmpty(t, w.Header().Get(config.HeaderETag))
	assert.NotEmpty(t, w.Header().Get(config.HeaderLastModified))
	assert.Equal(t, sampleFeed, w.Body.String())
}

func TestHandler_ETagChangesWithContent(t *testing.T) {
	srv := NewCalendarServer("0")
	h := http.HandlerFunc(srv.handleCalendarRequest)

	srv.Update([]byte(sampleFeed))
	first := get(t, h, http.MethodGet, config.RouteFeed, nil).Header().Get(config.HeaderETag)

	srv.Update([]byte(sampleFeed + "X"))
	second := get(t, h, http.MethodGet, config.RouteFeed, nil).Header().Get(config.HeaderETag)

	assert.NotEqual(t, first, second)
}

func TestHandler_IfNoneMatch(t *testing.T) {
	srv := NewCalendarServer("0")
	srv.Update([]byte(sampleFeed))
	h := http.HandlerFunc(srv.handleCalendarRequest)

	etag := get(t, h, http.MethodGet, config.RouteFeed, nil).Header().Get(config.HeaderETag)
	require.NotEmpty(t, etag)

	w := get(t, h, http.MethodGet, config.RouteFeed, http.Header{config.HeaderIfNoneMatch: {etag}})
	assert.Equal(t, http.StatusNotModified, w.Code)
	assert.Empty(t, w.Body.String())

	w = get(t, h, http.MethodGet, config.RouteFeed, http.Header{config.HeaderIfNoneMatch: {`"stale"`}})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_IfModifiedSince(t *testing.T) {
	srv := NewCalendarServer("0")
	srv.Update([]byte(sampleFeed))
	h := http.HandlerFunc(srv.handleCalendarRequest)

	future := time.Now().Add(time.Hour).UTC().Format(http.TimeFormat)
	w := get(t, h, http.MethodGet, config.RouteFeed, http.Header{config.HeaderIfModifiedSince: {future}})
	assert.Equal(t, http.StatusNotModified, w.Code)

	past := time.Now().Add(-time.Hour).UTC().Format(http.TimeFormat)
	w = get(t, h, http.MethodGet, config.RouteFeed, http.Header{config.HeaderIfModifiedSince: {past}})
	assert.Equal(t, http.StatusOK, w.Code)

	w = get(t, h, http.MethodGet, config.RouteFeed, http.Header{config.HeaderIfModifiedSince: {"yesterday"}})
	assert.Equal(t, http.StatusOK, w.Code, "unparsable dates are ignored")
}

func TestHandler_NotReady(t *testing.T) {
	srv := NewCalendarServer("0")

	w := get(t, http.HandlerFunc(srv.handleCalendarRequest), http.MethodGet, config.RouteFeed, nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, config.RetryAfterSeconds, w.Header().Get(config.HeaderRetryAfter))
}

// -----------------------------------------------------------------------------
// Router
// -----------------------------------------------------------------------------

func TestRouter_Routes(t *testing.T) {
	srv := NewCalendarServer("0")
	srv.Update([]byte(sampleFeed))
	h := srv.Router()

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"Root", http.MethodGet, config.RouteRoot, http.StatusOK, "SUMMARY:Vaccine"},
		{"Feed", http.MethodGet, config.RouteFeed, http.StatusOK, "SUMMARY:Vaccine"},
		{"FeedHead", http.MethodHead, config.RouteFeed, http.StatusOK, ""},
		{"FeedPost", http.MethodPost, config.RouteFeed, http.StatusMethodNotAllowed, ""},
		{"FeedDelete", http.MethodDelete, config.RouteRoot, http.StatusMethodNotAllowed, ""},
		{"Health", http.MethodGet, config.RouteHealth, http.StatusOK, config.HealthBody},
		{"Unknown", http.MethodGet, "/nope", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(t, h, tt.method, tt.path, nil)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Contains(t, w.Body.String(), tt.wantBody)
			}
			if tt.method == http.MethodHead {
				assert.Empty(t, w.Body.String())
			}
			if tt.wantStatus == http.StatusMethodNotAllowed {
				assert.Equal(t, config.AllowedMethods, w.Header().Get(config.HeaderAllow))
			}
		})
	}
}

func TestRouter_HealthBeforeFirstUpdate(t *testing.T) {
	srv := NewCalendarServer("0")
	w := get(t, srv.Router(), http.MethodGet, config.RouteHealth, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, config.MimeTextPlain, w.Header().Get(config.HeaderContentType))
}

// -----------------------------------------------------------------------------
// Concurrency
// -----------------------------------------------------------------------------

// Appointment mutations replace the feed while calendar clients poll it.
// Meaningful under -race.
func TestServer_ConcurrentUpdates(t *testing.T) {
	srv := NewCalendarServer("0")
	h := srv.Router()
	end := time.Now().Add(300 * time.Millisecond)
	var wg sync.WaitGroup

	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; time.Now().Before(end); i++ {
				srv.Update([]byte(fmt.Sprintf("BEGIN:VCALENDAR\r\nX-REV:%d-%d\r\nEND:VCALENDAR\r\n", id, i)))
				time.Sleep(time.Microsecond)
			}
		}(w)
	}

	for r := 0; r < 16; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) {
				w := get(t, h, http.MethodGet, config.RouteFeed, nil)
				if w.Code != http.StatusOK && w.Code != http.StatusServiceUnavailable {
					t.Errorf("unexpected status %d", w.Code)
				}
			}
		}()
	}

	wg.Wait()
}

// -----------------------------------------------------------------------------
// Lifecycle
// -----------------------------------------------------------------------------

func TestServer_StartRequiresPort(t *testing.T) {
	err := NewCalendarServer("").Start(context.Background())
	assert.EqualError(t, err, config.ErrPortRequired)
}

// TestServer_Lifecycle binds a real listener and shuts it down through the context.
func TestServer_Lifecycle(t *testing.T) {
	const port = "18099"

	srv := NewCalendarServer(port)
	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start(ctx)
	}()

	url := "http://" + config.LocalhostBindAddr + ":" + port + config.RouteFeed

	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return true
	}, 2*time.Second, 50*time.Millisecond, "listener not ready")

	resp, err := http.Get(url)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	_ = resp.Body.Close()

	srv.Update([]byte(sampleFeed))

	resp, err = http.Get(url)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, sampleFeed, string(body))

	cancel()
	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("shutdown timed out")
	}
}
