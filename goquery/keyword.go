package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagesift"
)

var _ pagesift.KeywordLocator = (*KeywordLocator)(nil)

// KeywordLocator finds page content by case-insensitive substring
// matching. Each call parses the page independently, so a locator is
// safe for concurrent use.
type KeywordLocator struct{}

// NewKeywordLocator creates a new KeywordLocator.
func NewKeywordLocator() *KeywordLocator {
	return &KeywordLocator{}
}

// TextByKeyword returns the text blocks containing the keyword.
// Script and style content is removed first so code never leaks into
// passages. Image alt text is searched as well, since image-heavy
// pages carry their content there. Results keep document order and are
// deduplicated by exact text.
func (l *KeywordLocator) TextByKeyword(html, baseURL, keyword string) ([]pagesift.TextItem, error) {
	doc, err := ParseDocument(html, baseURL)
	if err != nil {
		return nil, err
	}
	doc.Find("script, style").Remove()

	kw := strings.ToLower(keyword)
	seen := make(map[string]struct{})
	var items []pagesift.TextItem

	doc.Find(blockTags).Each(func(_ int, sel *goquery.Selection) {
		text := textContent(sel)
		if text == "" || !containsKeyword(text, kw) {
			return
		}
		if _, ok := seen[text]; ok {
			return
		}
		seen[text] = struct{}{}
		items = append(items, pagesift.TextItem{Text: text})
	})

	doc.Find("img[alt]").Each(func(_ int, sel *goquery.Selection) {
		alt := strings.TrimSpace(sel.AttrOr("alt", ""))
		if alt == "" || !containsKeyword(alt, kw) {
			return
		}
		text := "[Image Alt Text] " + alt
		if _, ok := seen[text]; ok {
			return
		}
		seen[text] = struct{}{}
		items = append(items, pagesift.TextItem{Text: text})
	})

	return items, nil
}

// ImagesByKeyword returns images whose alt, title or class attributes
// contain the keyword. Images inside a container whose text matches
// are included too, which catches keyword-adjacent images that carry
// no descriptive attributes of their own.
func (l *KeywordLocator) ImagesByKeyword(html, baseURL, keyword string) ([]pagesift.ImageItem, error) {
	doc, err := ParseDocument(html, baseURL)
	if err != nil {
		return nil, err
	}

	kw := strings.ToLower(keyword)
	seen := make(map[string]struct{})
	var items []pagesift.ImageItem

	add := func(sel *goquery.Selection) {
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
	}

	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		alt := sel.AttrOr("alt", "")
		title := sel.AttrOr("title", "")
		class := sel.AttrOr("class", "")
		if containsKeyword(alt, kw) || containsKeyword(title, kw) || containsKeyword(class, kw) {
			add(sel)
			return
		}

		parent := sel.Closest("div, section, article, figure")
		if parent.Length() > 0 && containsKeyword(textContent(parent), kw) {
			add(sel)
		}
	})

	return items, nil
}

// LinksByKeyword returns links whose text, href, title or class
// attributes contain the keyword. Targets are resolved against the
// page URL; non-HTTP schemes are skipped. Results keep document order
// and are deduplicated by resolved target.
func (l *KeywordLocator) LinksByKeyword(html, baseURL, keyword string) ([]pagesift.LinkItem, error) {
	doc, err := ParseDocument(html, baseURL)
	if err != nil {
		return nil, err
	}

	kw := strings.ToLower(keyword)
	seen := make(map[string]struct{})
	var items []pagesift.LinkItem

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href := sel.AttrOr("href", "")
		if href == "" || isNonHTTPLink(href) {
			return
		}

		text := textContent(sel)
		title := sel.AttrOr("title", "")
		class := sel.AttrOr("class", "")
		if !containsKeyword(text, kw) && !containsKeyword(href, kw) &&
			!containsKeyword(title, kw) && !containsKeyword(class, kw) {
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
		items = append(items, pagesift.LinkItem{Text: text, Href: resolved})
	})

	return items, nil
}
