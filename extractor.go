package locket

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main article content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	// Empty means the page had no extractable article body, which is
	// a valid outcome rather than an error.
	ContentHTML string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	Extract(html string) (*ExtractResult, error)
}
