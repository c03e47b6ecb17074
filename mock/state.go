package mock

import "github.com/fwojciec/docdex"

var _ docdex.StateService = (*StateService)(nil)

// StateService is a mock implementation of docdex.StateService.
type StateService struct {
	LoadFn           func() error
	SaveFn           func() error
	IsFreshFn        func(url string) bool
	NeedsUpdateFn    func(url, contentHash string) bool
	MarkCrawledFn    func(url, contentHash string)
	HasBeenCrawledFn func(url string) bool
	DeletedURLsFn    func(current []string) []string
	UpdateStatsFn    func(totalPages, totalChunks int)
	StateFn          func() docdex.CrawlState
}

func (s *StateService) Load() error { return s.LoadFn() }

func (s *StateService) Save() error { return s.SaveFn() }

func (s *StateService) IsFresh(url string) bool { return s.IsFreshFn(url) }

func (s *StateService) NeedsUpdate(url, contentHash string) bool {
	return s.NeedsUpdateFn(url, contentHash)
}

func (s *StateService) MarkCrawled(url, contentHash string) { s.MarkCrawledFn(url, contentHash) }

func (s *StateService) HasBeenCrawled(url string) bool { return s.HasBeenCrawledFn(url) }

func (s *StateService) DeletedURLs(current []string) []string { return s.DeletedURLsFn(current) }

func (s *StateService) UpdateStats(totalPages, totalChunks int) {
	s.UpdateStatsFn(totalPages, totalChunks)
}

func (s *StateService) State() docdex.CrawlState { return s.StateFn() }
