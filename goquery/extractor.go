// Package goquery provides a CSS-selector-based content extractor tuned
// for Docusaurus-style documentation sites.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docdex"
)

// Ensure Extractor implements docdex.Extractor at compile time.
var _ docdex.Extractor = (*Extractor)(nil)

// contentSelectors locate the main content area, tried in order.
var contentSelectors = []string{
	"article",
	"main",
	"[role='main']",
	".theme-doc-markdown",
	"#__docusaurus_skipToContent_fallback",
}

// removeSelectors match boilerplate stripped from the content area.
var removeSelectors = []string{
	"nav",
	"footer",
	"script",
	"style",
	"noscript",
	".breadcrumbs",
	"[class*='sidebar']",
	"[class*='toc']",
	"[class*='pagination']",
	"[class*='feedback']",
	"[class*='edit-page']",
	".theme-doc-toc-mobile",
	".theme-doc-footer",
}

// breadcrumbSelectors locate the navigation trail, tried in order.
var breadcrumbSelectors = []string{
	".breadcrumbs",
	"[aria-label='breadcrumbs']",
	".breadcrumb",
	"nav.breadcrumbs",
}

// Extractor extracts main content, title, and breadcrumbs from
// documentation pages using CSS selectors.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content with
// boilerplate removed, plus page metadata.
func (e *Extractor) Extract(html string) (*docdex.ExtractResult, error) {
	if strings.TrimSpace(html) == "" {
		return nil, docdex.Errorf(docdex.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, docdex.Errorf(docdex.EINVALID, "failed to parse HTML: %v", err)
	}

	title := extractTitle(doc)
	breadcrumb := extractBreadcrumb(doc)

	// Locate the main content area, falling back to body.
	var content *goquery.Selection
	for _, sel := range contentSelectors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			content = s
			break
		}
	}
	if content == nil {
		content = doc.Find("body").First()
		if content.Length() == 0 {
			content = doc.Selection
		}
	}

	for _, sel := range removeSelectors {
		content.Find(sel).Remove()
	}

	contentHTML, err := goquery.OuterHtml(content)
	if err != nil {
		return nil, err
	}

	return &docdex.ExtractResult{
		Title:       title,
		Breadcrumb:  breadcrumb,
		ContentHTML: contentHTML,
	}, nil
}

// extractTitle resolves the page title from h1, og:title, or <title>.
// A "Page Title | Site Name" suffix is stripped from <title> values.
func extractTitle(doc *goquery.Document) string {
	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}

	if og, ok := doc.Find("meta[property='og:title']").First().Attr("content"); ok {
		if og = strings.TrimSpace(og); og != "" {
			return og
		}
	}

	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		if i := strings.Index(title, "|"); i >= 0 {
			title = strings.TrimSpace(title[:i])
		}
		return title
	}

	return "Untitled"
}

// extractBreadcrumb collects link texts from the first matching
// breadcrumb container.
func extractBreadcrumb(doc *goquery.Document) []string {
	for _, sel := range breadcrumbSelectors {
		container := doc.Find(sel).First()
		if container.Length() == 0 {
			continue
		}

		var trail []string
		container.Find("a").Each(func(_ int, link *goquery.Selection) {
			if text := strings.TrimSpace(link.Text()); text != "" {
				trail = append(trail, text)
			}
		})
		if len(trail) > 0 {
			return trail
		}
	}
	return nil
}
