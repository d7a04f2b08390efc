package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagesift"
)

var _ pagesift.ListLocator = (*ListLocator)(nil)

// ListLocator enumerates page content without filtering.
type ListLocator struct{}

// NewListLocator creates a new ListLocator.
func NewListLocator() *ListLocator {
	return &ListLocator{}
}

// AllImages returns every image with a resolvable source, in document
// order, deduplicated by resolved URL.
func (l *ListLocator) AllImages(html, baseURL string) ([]pagesift.ImageItem, error) {
	doc, err := ParseDocument(html, baseURL)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var items []pagesift.ImageItem

	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		src := imageSource(sel)
		if src == "" {
			return
		}
		resolved := doc.ResolveURL(src)
		if resolved == "" {
			return
		}
		if _, ok := seen[resolved]; ok {
			return
		}
		seen[resolved] = struct{}{}
		items = append(items, pagesift.ImageItem{URL: resolved})
	})

	return items, nil
}

// AllLinks returns every hyperlink with a resolvable target, in
// document order, deduplicated by resolved target. Non-HTTP schemes
// are skipped.
func (l *ListLocator) AllLinks(html, baseURL string) ([]pagesift.LinkItem, error) {
	doc, err := ParseDocument(html, baseURL)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var items []pagesift.LinkItem

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href := sel.AttrOr("href", "")
		if href == "" || isNonHTTPLink(href) {
			return
		}
		resolved := doc.ResolveURL(href)
		if resolved == "" {
			return
		}
		if _, ok := seen[resolved]; ok {
			return
		}
		seen[resolved] = struct{}{}
		items = append(items, pagesift.LinkItem{Text: textContent(sel), Href: resolved})
	})

	return items, nil
}
