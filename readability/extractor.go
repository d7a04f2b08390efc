package readability

import (
	"strings"

	"github.com/fwojciec/pagesift"
	readability "github.com/go-shiori/go-readability"
)

// Ensure Extractor implements pagesift.Extractor at compile time.
var _ pagesift.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
// It serves as the fallback stage of the page reduction chain when
// trafilatura rejects a page.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*pagesift.ExtractResult, error) {
	if rawHTML == "" {
		return nil, pagesift.Errorf(pagesift.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, pagesift.Errorf(pagesift.EPARSE, "content extraction failed: %v", err)
	}

	return &pagesift.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
