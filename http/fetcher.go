// Package http provides the HTTP implementation of pagesift.Fetcher and the
// JSON API server.
package http

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/pagesift"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxRedirects caps how many redirects a single fetch follows.
const DefaultMaxRedirects = 5

// maxBodySize caps how much of a response body is read.
const maxBodySize = 4 << 20

// userAgent is a common browser signature. Some sites serve bot-identified
// clients an empty or blocked page.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

var errTooManyRedirects = errors.New("too many redirects")

// Ensure Fetcher implements pagesift.Fetcher at compile time.
var _ pagesift.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using plain HTTP requests.
// It does not execute JavaScript and is suitable for static pages only.
// Response bodies are decoded to UTF-8 using the declared character set.
type Fetcher struct {
	client       *http.Client
	timeout      time.Duration
	maxRedirects int
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxRedirects sets the redirect cap.
// Defaults to DefaultMaxRedirects if not specified.
func WithMaxRedirects(n int) Option {
	return func(f *Fetcher) {
		f.maxRedirects = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:      DefaultFetchTimeout,
		maxRedirects: DefaultMaxRedirects,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= f.maxRedirects {
				return errTooManyRedirects
			}
			return nil
		},
	}

	return f
}

// Fetch retrieves the decoded HTML content from the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", pagesift.Errorf(pagesift.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fetchError(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return "", pagesift.Errorf(pagesift.EHTTPSTATUS, "HTTP %d for %s", resp.StatusCode, url)
	}

	reader, err := charset.NewReader(io.LimitReader(resp.Body, maxBodySize), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", pagesift.Errorf(pagesift.EPARSE, "decode response from %s: %v", url, err)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return "", fetchError(url, err)
	}

	return string(body), nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// fetchError maps transport failures onto coded errors.
func fetchError(url string, err error) error {
	if errors.Is(err, errTooManyRedirects) {
		return pagesift.Errorf(pagesift.EREDIRECTS, "too many redirects fetching %s", url)
	}
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return pagesift.Errorf(pagesift.ETIMEOUT, "request to %s timed out", url)
	}
	return pagesift.Errorf(pagesift.EUNREACHABLE, "could not fetch %s: %v", url, err)
}
