// Package http provides HTTP-based implementations of lessonfetch services:
// a fetcher for static pages, the LingQ API client, and an RSS/Atom feed
// reader.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/lessonfetch/lessonfetch"
)

// DefaultFetchTimeout is the default timeout for HTTP requests. News sites
// can be slow, so this is generous.
const DefaultFetchTimeout = 25 * time.Second

// DefaultUserAgent identifies the importer to the sites it fetches from.
const DefaultUserAgent = "Mozilla/5.0 (compatible; lessonfetch/1.0; +https://github.com/lessonfetch/lessonfetch)"

// Ensure Fetcher implements lessonfetch.Fetcher at compile time.
var _ lessonfetch.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using plain HTTP requests.
// Unlike rod.Fetcher, this does not execute JavaScript and cannot run
// pre-steps; it is suitable for static sites only.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (25s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with each request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithClient sets the underlying HTTP client, for callers that need a
// custom transport. WithTimeout has no effect when a client is supplied;
// the client's own timeout governs.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{
			Timeout: f.timeout,
		}
	}

	return f
}

// Fetch retrieves the HTML content for the given request.
func (f *Fetcher) Fetch(ctx context.Context, req lessonfetch.FetchRequest) (string, error) {
	if len(req.PreSteps) > 0 {
		return "", lessonfetch.Errorf(lessonfetch.EINVALID,
			"site requires browser pre-steps; use the rod fetcher")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("User-Agent", f.userAgent)
	if req.AcceptLanguage != "" {
		httpReq.Header.Set("Accept-Language", req.AcceptLanguage)
	}

	resp, err := f.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", statusError(resp.StatusCode, req.URL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// statusError maps an HTTP status code to a coded domain error.
func statusError(status int, url string) error {
	switch status {
	case http.StatusNotFound, http.StatusGone:
		return lessonfetch.Errorf(lessonfetch.ENOTFOUND, "HTTP %d for %s", status, url)
	case http.StatusUnauthorized, http.StatusForbidden:
		return lessonfetch.Errorf(lessonfetch.EUNAUTHORIZED, "HTTP %d for %s", status, url)
	default:
		return lessonfetch.Errorf(lessonfetch.EINTERNAL, "HTTP %d for %s", status, url)
	}
}
