// Package goquery implements DOM-based locator strategies using the
// goquery HTML parsing library: keyword search, exhaustive listing and
// repeating-card detection.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagesift"
)

// blockTags lists the element types treated as coherent text blocks
// for keyword search. A keyword hit returns the matching block's whole
// text rather than a fragment.
const blockTags = "p, div, span, h1, h2, h3, h4, h5, h6, li, td, th, article, section"

// imageSourceAttrs are consulted in order for an image URL.
// Lazy-loading libraries stash the real source in data-* attributes
// and leave src pointing at a placeholder.
var imageSourceAttrs = []string{"src", "data-src", "data-lazy-src", "data-original", "data-url"}

// Document is a parsed HTML page together with its base URL.
// All locator strategies query it.
type Document struct {
	doc  *goquery.Document
	base *url.URL
}

// ParseDocument parses raw HTML into a Document. Parsing is
// best-effort: malformed markup is recovered wherever possible, and
// only input that yields no document at all fails.
func ParseDocument(html string, baseURL string) (*Document, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, pagesift.Errorf(pagesift.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, pagesift.Errorf(pagesift.EPARSE, "failed to parse HTML: %v", err)
	}

	return &Document{doc: doc, base: base}, nil
}

// Find returns the selection matching the CSS selector.
func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// ResolveURL resolves a possibly relative href against the document's
// base URL. Protocol-relative references pick up the base scheme and
// bare fragments resolve to the page URL plus fragment. Returns empty
// string if the href cannot be parsed.
func (d *Document) ResolveURL(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return d.base.ResolveReference(ref).String()
}

// textContent returns the selection's text with all whitespace runs
// collapsed to single spaces.
func textContent(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}

// imageSource returns the image URL from the first populated source
// attribute.
func imageSource(sel *goquery.Selection) string {
	for _, attr := range imageSourceAttrs {
		if v, ok := sel.Attr(attr); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// containsKeyword reports whether s contains the keyword. The keyword
// must already be lowercase.
func containsKeyword(s, keyword string) bool {
	return strings.Contains(strings.ToLower(s), keyword)
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
