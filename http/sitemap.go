package http

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/docdex"
)

// Ensure SitemapService implements docdex.SitemapService.
var _ docdex.SitemapService = (*SitemapService)(nil)

// SitemapService fetches and parses a sitemap document over HTTP.
type SitemapService struct {
	client     *http.Client
	sitemapURL string
	disallowed []string
}

// SitemapOption configures a SitemapService.
type SitemapOption func(*SitemapService)

// WithDisallowedPatterns overrides the URL substrings excluded from the
// result. Defaults to docdex.DefaultDisallowedPatterns.
func WithDisallowedPatterns(patterns []string) SitemapOption {
	return func(s *SitemapService) {
		s.disallowed = patterns
	}
}

// NewSitemapService creates a SitemapService for the given sitemap URL.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client, sitemapURL string, opts ...SitemapOption) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	s := &SitemapService{
		client:     client,
		sitemapURL: sitemapURL,
		disallowed: docdex.DefaultDisallowedPatterns,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchURLs retrieves the sitemap and returns allowed page URLs in
// document order. Retrieval failures surface as EUNAVAILABLE, malformed
// sitemap XML as EINVALID.
func (s *SitemapService) FetchURLs(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.sitemapURL, nil)
	if err != nil {
		return nil, docdex.Errorf(docdex.EINVALID, "invalid sitemap URL %q: %v", s.sitemapURL, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, docdex.Errorf(docdex.EUNAVAILABLE, "fetching sitemap: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, docdex.Errorf(docdex.EUNAVAILABLE, "fetching sitemap: HTTP %d for %s", resp.StatusCode, s.sitemapURL)
	}

	urls, err := parseURLSet(resp.Body)
	if err != nil {
		return nil, err
	}

	return docdex.FilterURLs(urls, s.disallowed), nil
}

// parseURLSet extracts <url><loc> entries from a sitemap urlset in
// document order.
func parseURLSet(r io.Reader) ([]string, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, docdex.Errorf(docdex.EINVALID, "parsing sitemap XML: %v", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, docdex.Errorf(docdex.EINVALID, "empty sitemap XML")
	}

	var urls []string
	for _, urlEl := range root.SelectElements("url") {
		loc := urlEl.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			urls = append(urls, u)
		}
	}
	return urls, nil
}
