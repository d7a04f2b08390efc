package pagesift

import "context"

// Fetcher retrieves raw HTML content from URLs.
// Implementations own the timeout, redirect and character-encoding
// policy. Pages that require JavaScript rendering are out of scope.
type Fetcher interface {
	// Fetch performs a single GET request and returns the page body
	// decoded to UTF-8. The context bounds the whole operation; no
	// retries are attempted.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}
