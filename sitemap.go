package docdex

import (
	"context"
	"strings"
)

// DefaultDisallowedPatterns are path substrings excluded from crawling:
// archive snapshots and search endpoints carry no indexable content.
var DefaultDisallowedPatterns = []string{"/archive/", "/search-for", "?s="}

// SitemapService resolves the candidate URL set for a crawl run.
type SitemapService interface {
	// FetchURLs retrieves and parses the site's sitemap and returns the
	// allowed page URLs in document order. Order carries no meaning but
	// is preserved for determinism of downstream indices.
	FetchURLs(ctx context.Context) ([]string, error)
}

// FilterURLs removes any URL containing one of the disallowed substrings.
// It is a pure, order-preserving predicate; no URL is ever added.
func FilterURLs(urls []string, disallowed []string) []string {
	filtered := make([]string, 0, len(urls))
	for _, u := range urls {
		if !containsAny(u, disallowed) {
			filtered = append(filtered, u)
		}
	}
	return filtered
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// PagePath returns the URL path with the site base URL stripped.
// Example: https://docs.example.com/aws/en/compute/clusters -> /aws/en/compute/clusters
func PagePath(baseURL, url string) string {
	return strings.TrimPrefix(url, strings.TrimSuffix(baseURL, "/"))
}

// Categorize derives a category and subcategory from a URL's path segments.
// The first two segments (cloud-region and language markers, e.g. aws/en)
// are skipped; the next segment is the category and the one after the
// subcategory. Returns ("other", "") when no segments remain. Pure string
// derivation, no I/O.
func Categorize(baseURL, url string) (category, subcategory string) {
	path := PagePath(baseURL, url)

	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}

	// Skip the cloud and language markers.
	if len(parts) >= 2 {
		parts = parts[2:]
	}

	if len(parts) == 0 {
		return "other", ""
	}

	category = parts[0]
	if len(parts) > 1 {
		subcategory = parts[1]
	}
	return category, subcategory
}
