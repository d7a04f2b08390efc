// Package scrape orchestrates scrape requests. It validates the request,
// fetches the page once, runs the locator strategy selected by the request
// and normalizes the outcome into the canonical result shapes.
package scrape

import (
	"context"
	"net/url"

	"github.com/fwojciec/pagesift"
)

// Ensure Scraper implements pagesift.ScrapeService at compile time.
var _ pagesift.ScrapeService = (*Scraper)(nil)

// Scraper executes scrape requests against live pages. Topics may be nil
// when no AI provider is configured; ai_topic requests then fail cleanly.
type Scraper struct {
	Fetcher     pagesift.Fetcher
	Keywords    pagesift.KeywordLocator
	Lists       pagesift.ListLocator
	Cards       pagesift.CardDetector
	Topics      pagesift.TopicResolver
	RateLimiter pagesift.DomainLimiter
}

// Scrape runs a single request end to end.
func (s *Scraper) Scrape(ctx context.Context, req *pagesift.ScrapeRequest) (*pagesift.ScrapeResult, error) {
	if req == nil {
		return nil, pagesift.Errorf(pagesift.EINVALID, "request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	pageURL, err := pagesift.NormalizeURL(req.URL)
	if err != nil {
		return nil, err
	}

	if s.RateLimiter != nil {
		u, _ := url.Parse(pageURL)
		if err := s.RateLimiter.Wait(ctx, u.Host); err != nil {
			return nil, err
		}
	}

	html, err := s.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	result, err := s.dispatch(ctx, req, html, pageURL)
	if err != nil {
		return nil, err
	}
	if result.Len() == 0 {
		return nil, noResults(req)
	}
	return result, nil
}

// dispatch runs the strategy selected by the request's type and method.
func (s *Scraper) dispatch(ctx context.Context, req *pagesift.ScrapeRequest, html, pageURL string) (*pagesift.ScrapeResult, error) {
	switch req.ContentType {
	case pagesift.ContentTypeText:
		if req.Options.Method == pagesift.MethodAITopic {
			if s.Topics == nil {
				return nil, pagesift.Errorf(pagesift.EINTERNAL, "topic resolution is not configured")
			}
			entries, err := s.Topics.Resolve(ctx, html, pageURL, req.Options.TopicQuery)
			if err != nil {
				return nil, err
			}
			return pagesift.NormalizeEntries(entries), nil
		}
		texts, err := s.Keywords.TextByKeyword(html, pageURL, req.Options.Keyword)
		if err != nil {
			return nil, err
		}
		return pagesift.NormalizeTexts(texts), nil

	case pagesift.ContentTypeImage:
		var images []pagesift.ImageItem
		var err error
		if req.Options.Method == pagesift.MethodListAll {
			images, err = s.Lists.AllImages(html, pageURL)
		} else {
			images, err = s.Keywords.ImagesByKeyword(html, pageURL, req.Options.Keyword)
		}
		if err != nil {
			return nil, err
		}
		return pagesift.NormalizeImages(images), nil

	case pagesift.ContentTypeLink:
		links, err := s.Keywords.LinksByKeyword(html, pageURL, req.Options.Keyword)
		if err != nil {
			return nil, err
		}
		return pagesift.NormalizeLinks(links), nil

	case pagesift.ContentTypeCard:
		cards, err := s.Cards.DetectCards(html, pageURL)
		if err != nil {
			return nil, err
		}
		return pagesift.NormalizeCards(cards), nil
	}

	return nil, pagesift.Errorf(pagesift.EINVALID, "invalid scrape type %q", req.ContentType)
}

// noResults phrases the empty outcome for each strategy.
func noResults(req *pagesift.ScrapeRequest) error {
	switch req.ContentType {
	case pagesift.ContentTypeText:
		if req.Options.Method == pagesift.MethodAITopic {
			return pagesift.Errorf(pagesift.ENORESULTS, "no content matching the query was found")
		}
		return pagesift.Errorf(pagesift.ENORESULTS, "no text containing %q was found", req.Options.Keyword)
	case pagesift.ContentTypeImage:
		if req.Options.Method == pagesift.MethodListAll {
			return pagesift.Errorf(pagesift.ENORESULTS, "no images were found on the page")
		}
		return pagesift.Errorf(pagesift.ENORESULTS, "no images matching %q were found", req.Options.Keyword)
	case pagesift.ContentTypeLink:
		return pagesift.Errorf(pagesift.ENORESULTS, "no links containing %q were found", req.Options.Keyword)
	case pagesift.ContentTypeCard:
		return pagesift.Errorf(pagesift.ENORESULTS, "no repeating card layout was found on the page")
	}
	return pagesift.Errorf(pagesift.ENORESULTS, "nothing was found on the page")
}
