package pagesift

import (
	"context"
	"net/url"
	"strings"
)

// ContentType selects the kind of content a request extracts.
type ContentType string

// Content types accepted by ScrapeRequest.
const (
	ContentTypeText  ContentType = "text"
	ContentTypeImage ContentType = "image"
	ContentTypeLink  ContentType = "link"
	ContentTypeCard  ContentType = "card"
)

// Method selects the locator strategy within a content type.
type Method string

// Locator strategies accepted by StrategyOptions.
const (
	MethodKeyword Method = "keyword"
	MethodAITopic Method = "ai_topic"
	MethodListAll Method = "list_all"
)

// StrategyOptions carries the per-strategy parameters of a request.
// Exactly one of Keyword and TopicQuery is populated, determined by
// Method. Link requests imply keyword matching and may omit Method;
// card requests take no options at all.
type StrategyOptions struct {
	Method     Method `json:"method,omitempty"`
	Keyword    string `json:"keyword,omitempty"`
	TopicQuery string `json:"topic_query,omitempty"`
}

// ScrapeRequest describes a single extraction request against one page.
type ScrapeRequest struct {
	URL         string          `json:"url"`
	ContentType ContentType     `json:"type"`
	Options     StrategyOptions `json:"options"`
}

// Validate returns EINVALID if the request violates the option
// invariants for its content type. Validation runs before any network
// activity.
func (r *ScrapeRequest) Validate() error {
	if strings.TrimSpace(r.URL) == "" {
		return Errorf(EINVALID, "URL is required")
	}

	switch r.ContentType {
	case ContentTypeText:
		switch r.Options.Method {
		case MethodKeyword:
			if strings.TrimSpace(r.Options.Keyword) == "" {
				return Errorf(EINVALID, "keyword is required")
			}
			if r.Options.TopicQuery != "" {
				return Errorf(EINVALID, "topic query must be empty for the keyword method")
			}
		case MethodAITopic:
			if strings.TrimSpace(r.Options.TopicQuery) == "" {
				return Errorf(EINVALID, "topic query is required")
			}
			if r.Options.Keyword != "" {
				return Errorf(EINVALID, "keyword must be empty for the ai_topic method")
			}
		default:
			return Errorf(EINVALID, "unsupported method %q for text requests", r.Options.Method)
		}

	case ContentTypeImage:
		switch r.Options.Method {
		case MethodKeyword:
			if strings.TrimSpace(r.Options.Keyword) == "" {
				return Errorf(EINVALID, "keyword is required")
			}
		case MethodListAll:
			if r.Options.Keyword != "" {
				return Errorf(EINVALID, "keyword must be empty for the list_all method")
			}
		default:
			return Errorf(EINVALID, "unsupported method %q for image requests", r.Options.Method)
		}
		if r.Options.TopicQuery != "" {
			return Errorf(EINVALID, "topic query is only valid for text requests")
		}

	case ContentTypeLink:
		if r.Options.Method != "" && r.Options.Method != MethodKeyword {
			return Errorf(EINVALID, "unsupported method %q for link requests", r.Options.Method)
		}
		if strings.TrimSpace(r.Options.Keyword) == "" {
			return Errorf(EINVALID, "keyword is required")
		}
		if r.Options.TopicQuery != "" {
			return Errorf(EINVALID, "topic query is only valid for text requests")
		}

	case ContentTypeCard:
		if r.Options.Method != "" || r.Options.Keyword != "" || r.Options.TopicQuery != "" {
			return Errorf(EINVALID, "card requests take no options")
		}

	default:
		return Errorf(EINVALID, "invalid scrape type %q", r.ContentType)
	}

	return nil
}

// NormalizeURL trims whitespace, defaults the scheme to https when
// none is given, and verifies the result parses as an absolute URL
// with a host.
func NormalizeURL(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", Errorf(EINVALID, "URL is required")
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		rawURL = "https://" + rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", Errorf(EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	if u.Host == "" {
		return "", Errorf(EINVALID, "invalid URL %q: missing host", rawURL)
	}
	return u.String(), nil
}

// TextItem is a single prose passage resolved from the page.
type TextItem struct {
	Title string `json:"title,omitempty"`
	Text  string `json:"text"`
}

// ResultListEntry is one row of a list-shaped result, such as a
// posting or notice line. Status carries a trailing tag (e.g. "Out",
// "Final Result") through unmodified when one was present.
type ResultListEntry struct {
	Title  string `json:"title"`
	Text   string `json:"text,omitempty"`
	Link   string `json:"link,omitempty"`
	Status string `json:"status,omitempty"`
}

// ImageItem is a single image reference. URL is always absolute.
type ImageItem struct {
	URL string `json:"url"`
}

// LinkItem is a single hyperlink. Href is always absolute.
type LinkItem struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// CardItem is one record extracted from a repeating card layout.
type CardItem struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link,omitempty"`
	Image       string `json:"image,omitempty"`
}

// ResultKind tags which field of a ScrapeResult is populated.
type ResultKind string

// Result kinds produced by normalization.
const (
	KindText   ResultKind = "text"
	KindList   ResultKind = "list"
	KindImages ResultKind = "images"
	KindLinks  ResultKind = "links"
	KindCards  ResultKind = "cards"
)

// ScrapeResult is the canonical outcome of a scrape. Exactly the field
// matching Kind is populated; sequences are never mixed-type. Items
// appear in document order, except ai_topic results which follow the
// model's answer order.
type ScrapeResult struct {
	Kind    ResultKind        `json:"kind"`
	Text    *TextItem         `json:"text,omitempty"`
	Entries []ResultListEntry `json:"entries,omitempty"`
	Images  []ImageItem       `json:"images,omitempty"`
	Links   []LinkItem        `json:"links,omitempty"`
	Cards   []CardItem        `json:"cards,omitempty"`
}

// Len reports the number of items the result carries.
func (r *ScrapeResult) Len() int {
	if r == nil {
		return 0
	}
	switch r.Kind {
	case KindText:
		if r.Text != nil {
			return 1
		}
		return 0
	case KindList:
		return len(r.Entries)
	case KindImages:
		return len(r.Images)
	case KindLinks:
		return len(r.Links)
	case KindCards:
		return len(r.Cards)
	}
	return 0
}

// ScrapeService executes scrape requests.
type ScrapeService interface {
	// Scrape validates the request, fetches the page once, runs the
	// strategy selected by (type, method) and returns a normalized
	// result. Returns ENORESULTS when the strategy ran cleanly but
	// found nothing.
	Scrape(ctx context.Context, req *ScrapeRequest) (*ScrapeResult, error)
}
