package docdex

// ExtractResult holds the content and page metadata extracted from HTML.
type ExtractResult struct {
	// Title is the page title (h1, og:title, or <title> fallback).
	Title string

	// Breadcrumb is the navigation trail, outermost first. Extractors
	// that cannot recover navigation structure leave it empty.
	Breadcrumb []string

	// ContentHTML is the main content as clean HTML with boilerplate
	// (nav, footer, sidebar, scripts) removed.
	ContentHTML string
}

// Extractor extracts main content and metadata from HTML pages.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}
