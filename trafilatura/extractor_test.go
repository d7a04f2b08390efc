package trafilatura_test

import (
	"testing"

	"github.com/fwojciec/pagesift"
	"github.com/fwojciec/pagesift/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements pagesift.Extractor at compile time.
var _ pagesift.Extractor = (*trafilatura.Extractor)(nil)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts title from meta tags", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
<title>Admissions Open - City College</title>
<meta property="og:title" content="Admissions Open 2025">
</head>
<body>
<nav>Navigation here</nav>
<main>
<h1>Admissions Open</h1>
<p>Applications for the 2025 intake are now being accepted at all campuses.</p>
</main>
<footer>Footer content</footer>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.NotEmpty(t, result.Title)
	})

	t.Run("extracts main content and drops navigation", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Results</title></head>
<body>
<nav class="main-nav">
<ul>
<li><a href="/">Home</a></li>
<li><a href="/results">Results</a></li>
<li><a href="/contact">Contact</a></li>
</ul>
</nav>
<main>
<h1>Examination Results</h1>
<p>The final merit list has been published and is available for download.</p>
</main>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "final merit list")
		assert.NotContains(t, result.ContentHTML, "main-nav")
	})

	t.Run("removes footer boilerplate", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Notice</title></head>
<body>
<article>
<h1>Holiday Notice</h1>
<p>The office remains closed on Friday for the public holiday.</p>
</article>
<footer>
<p>Copyright 2025 Example Corp</p>
<nav>Privacy | Terms | Contact</nav>
</footer>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "closed on Friday")
		assert.NotContains(t, result.ContentHTML, "Copyright 2025 Example Corp")
	})

	t.Run("keeps tabular listings", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Postings</title></head>
<body>
<article>
<h1>Current Postings</h1>
<table>
<tr><td>Clerk Recruitment 2025</td><td>Out</td></tr>
<tr><td>Assistant Engineer</td><td>Last Date</td></tr>
</table>
</article>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "Clerk Recruitment 2025")
	})

	t.Run("returns EINVALID for empty input", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor()
		_, err := ext.Extract("")

		require.Error(t, err)
		assert.Equal(t, pagesift.EINVALID, pagesift.ErrorCode(err))
	})

	t.Run("handles minimal valid HTML", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>Simple content</p></body></html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "Simple content")
	})
}
