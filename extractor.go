package pagesift

// ExtractResult holds the main content extracted from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML, with boilerplate
	// (navigation, footers, sidebars, ads) removed.
	ContentHTML string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
// The topic strategy reduces pages through an extractor chain before
// sending them to the language model.
type Extractor interface {
	// Extract processes raw HTML and returns the extracted content.
	// Returns an error if the input is empty or no content could be
	// isolated.
	Extract(html string) (*ExtractResult, error)
}
