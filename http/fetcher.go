// Package http provides an HTTP-based implementation of locket.Fetcher.
// It is the single network-read primitive shared by the metadata and
// content enrichment stages.
package http

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/locket"
)

// DefaultFetchTimeout bounds a single fetch, including body read.
const DefaultFetchTimeout = 30 * time.Second

// UserAgent identifies locket to the sites it fetches.
const UserAgent = "Mozilla/5.0 (compatible; Locket/1.0; +https://locket.example.com)"

// Ensure Fetcher implements locket.Fetcher at compile time.
var _ locket.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using plain HTTP requests.
// It does not execute JavaScript; pages needing a renderer go through
// the rod package instead.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
	limiter *DomainLimiter
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithDomainLimiter rate-limits fetches per domain. The metadata and
// content stages fetch the same host independently, so a limiter keeps
// retries from hammering a struggling site.
func WithDomainLimiter(l *DomainLimiter) Option {
	return func(f *Fetcher) {
		f.limiter = l
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL. Any non-2xx status,
// timeout or transport failure returns an EUNAVAILABLE error; callers own
// the retry policy.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if f.limiter != nil {
		u, err := url.Parse(rawURL)
		if err != nil {
			return "", locket.Errorf(locket.EINVALID, "invalid URL %q: %v", rawURL, err)
		}
		if err := f.limiter.Wait(ctx, u.Host); err != nil {
			return "", err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", locket.Errorf(locket.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", locket.Errorf(locket.EUNAVAILABLE, "fetch %s: %v", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", locket.Errorf(locket.EUNAVAILABLE, "fetch %s: HTTP %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", locket.Errorf(locket.EUNAVAILABLE, "fetch %s: reading body: %v", rawURL, err)
	}

	return string(body), nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
