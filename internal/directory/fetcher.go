package directory

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/tartampluch/go-petcare/internal/config"
)

// Fetcher retrieves a remote vCard address book.
type Fetcher interface {
	Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error)
}

// HTTPFetcher implements Fetcher over net/http.
type HTTPFetcher struct {
	Client *http.Client
}

func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{Client: &http.Client{Timeout: config.HTTPTimeout}}
}

// Fetch downloads targetURL with optional basic auth. The body is capped at
// MaxHTTPResponseSize.
func (f *HTTPFetcher) Fetch(ctx context.Context, targetURL, user, pass string) (io.ReadCloser, error) {
	req, err := newDirectoryRequest(ctx, targetURL, user, pass)
	if err != nil {
		return nil, err
	}

	log := slog.With(config.LogKeyComponent, config.CompFetcher, config.LogKeyURL, redactURL(req.URL))
	log.Debug("Downloading veterinarian directory")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrFetchNetwork, err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		log.Warn("Directory server refused the request", config.LogKeyStatus, resp.StatusCode)
		return nil, fmt.Errorf("%s: %s", config.ErrFetchStatus, resp.Status)
	}

	return &cappedBody{
		Reader: io.LimitReader(resp.Body, config.MaxHTTPResponseSize),
		Closer: resp.Body,
	}, nil
}

func newDirectoryRequest(ctx context.Context, targetURL, user, pass string) (*http.Request, error) {
	u, err := url.Parse(targetURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	switch u.Scheme {
	case config.SchemeHTTP, config.SchemeHTTPS:
	default:
		return nil, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrFetchRequest, err)
	}
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	if user != "" || pass != "" {
		req.SetBasicAuth(user, pass)
	}
	return req, nil
}

// redactURL drops credentials and the query string.
func redactURL(u *url.URL) string {
	return u.Scheme + "://" + u.Host + u.Path
}

type cappedBody struct {
	io.Reader
	io.Closer
}
