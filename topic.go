package pagesift

import "context"

// TopicResolver answers a natural-language query about a page by
// delegating content selection to a language model.
type TopicResolver interface {
	// Resolve reduces the page to a bounded textual representation,
	// asks the model for the content relevant to topicQuery, and
	// parses the answer. A structured answer yields one entry per
	// record; a free-form answer yields a single entry holding the
	// passage. Returns ENORESULTS when the model reports nothing
	// relevant.
	Resolve(ctx context.Context, html, baseURL, topicQuery string) ([]ResultListEntry, error)
}
