package pagesift

// KeywordLocator finds page content by case-insensitive substring
// matching against element text and the attributes relevant to each
// content kind. Implementations parse the HTML themselves. An empty
// result with a nil error means nothing matched.
type KeywordLocator interface {
	// TextByKeyword returns the text blocks whose content contains
	// the keyword. A hit anywhere inside a block yields the block's
	// whole text rather than a fragment. Results are deduplicated by
	// text and keep document order.
	TextByKeyword(html, baseURL, keyword string) ([]TextItem, error)

	// ImagesByKeyword returns images whose alt, title or class
	// attributes contain the keyword, or whose enclosing container's
	// text does. Image URLs are resolved against baseURL.
	ImagesByKeyword(html, baseURL, keyword string) ([]ImageItem, error)

	// LinksByKeyword returns links whose text, href, title or class
	// attributes contain the keyword. Targets are resolved against
	// baseURL; non-HTTP schemes (javascript:, mailto:) are skipped.
	LinksByKeyword(html, baseURL, keyword string) ([]LinkItem, error)
}

// ListLocator enumerates every node of a requested kind without
// filtering.
type ListLocator interface {
	// AllImages returns every image with a resolvable source, in
	// document order, deduplicated by resolved URL.
	AllImages(html, baseURL string) ([]ImageItem, error)

	// AllLinks returns every hyperlink with a resolvable target, in
	// document order, deduplicated by resolved URL.
	AllLinks(html, baseURL string) ([]LinkItem, error)
}

// CardDetector finds repeating sibling structures that present records
// in a uniform layout and extracts one item per repetition.
type CardDetector interface {
	// DetectCards returns one CardItem per repeated element, in
	// document order. Groups with fewer than two repetitions are
	// discarded as noise. An empty result with a nil error means no
	// repeating pattern was found.
	DetectCards(html, baseURL string) ([]CardItem, error)
}
