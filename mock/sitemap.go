package mock

import (
	"context"

	"github.com/fwojciec/docdex"
)

var _ docdex.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of docdex.SitemapService.
type SitemapService struct {
	FetchURLsFn func(ctx context.Context) ([]string, error)
}

func (s *SitemapService) FetchURLs(ctx context.Context) ([]string, error) {
	return s.FetchURLsFn(ctx)
}
