// Package fs provides file-based persistence for crawl state.
package fs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fwojciec/docdex"
)

// Ensure StateStore implements docdex.StateService at compile time.
var _ docdex.StateService = (*StateStore)(nil)

// StateStore persists crawl state as a JSON document. Load tolerates a
// missing or corrupt file by starting from empty state; Save writes to a
// temporary file and renames it over the target so a crash mid-save cannot
// corrupt previously-durable state.
//
// The store is not safe for concurrent use; the orchestrator loop is the
// single writer. There is no cross-process lock either: callers must
// serialize invocations externally.
type StateStore struct {
	path      string
	threshold time.Duration
	now       func() time.Time
	state     docdex.CrawlState
}

// Option configures a StateStore.
type Option func(*StateStore)

// WithFreshnessThreshold overrides the freshness window.
// Defaults to docdex.DefaultFreshnessThreshold (7 days).
func WithFreshnessThreshold(d time.Duration) Option {
	return func(s *StateStore) {
		s.threshold = d
	}
}

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *StateStore) {
		s.now = now
	}
}

// NewStateStore creates a StateStore backed by the file at path.
// Call Load before use.
func NewStateStore(path string, opts ...Option) *StateStore {
	s := &StateStore{
		path:      path,
		threshold: docdex.DefaultFreshnessThreshold,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state = emptyState()
	return s
}

func emptyState() docdex.CrawlState {
	return docdex.CrawlState{URLStates: make(map[string]docdex.URLState)}
}

// stateDocument is the on-disk shape. It carries the legacy flat
// url_hashes mapping so pre-timestamp state files can be detected and
// migrated; the field is never written back.
type stateDocument struct {
	docdex.CrawlState
	URLHashes map[string]string `json:"url_hashes,omitempty"`
}

// Load reads the state file. Missing or malformed files initialize empty
// state rather than failing: startup is never blocked by a corrupt cache.
func (s *StateStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		s.state = emptyState()
		return nil
	}

	var doc stateDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		s.state = emptyState()
		return nil
	}

	s.state = doc.CrawlState
	if s.state.URLStates == nil {
		s.state.URLStates = make(map[string]docdex.URLState)
	}

	// Migrate a legacy flat url -> hash document: synthesize last_fetched
	// as now, exactly once. Migrated URLs count as freshly crawled, which
	// avoids a full re-crawl triggered purely by the format change.
	if len(doc.URLHashes) > 0 && len(s.state.URLStates) == 0 {
		now := s.now()
		for url, hash := range doc.URLHashes {
			s.state.URLStates[url] = docdex.URLState{
				ContentHash: hash,
				LastFetched: now,
			}
		}
	}

	return nil
}

// Save persists the state atomically: write to a temp file in the same
// directory, then rename over the target.
func (s *StateStore) Save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}

	return os.Rename(tmp, s.path)
}

// IsFresh reports whether url was fetched within the freshness threshold.
// Absence of state means not fresh.
func (s *StateStore) IsFresh(url string) bool {
	us, ok := s.state.URLStates[url]
	if !ok {
		return false
	}
	return s.now().Sub(us.LastFetched) < s.threshold
}

// NeedsUpdate reports whether url is unseen or its stored hash differs
// from contentHash.
func (s *StateStore) NeedsUpdate(url, contentHash string) bool {
	us, ok := s.state.URLStates[url]
	if !ok {
		return true
	}
	return us.ContentHash != contentHash
}

// MarkCrawled overwrites the state for url. Hash and timestamp move
// together; there is no partial update.
func (s *StateStore) MarkCrawled(url, contentHash string) {
	s.state.URLStates[url] = docdex.URLState{
		ContentHash: contentHash,
		LastFetched: s.now(),
	}
}

// HasBeenCrawled reports whether url has ever been crawled.
func (s *StateStore) HasBeenCrawled(url string) bool {
	_, ok := s.state.URLStates[url]
	return ok
}

// DeletedURLs returns tracked URLs absent from current, sorted.
func (s *StateStore) DeletedURLs(current []string) []string {
	currentSet := make(map[string]bool, len(current))
	for _, u := range current {
		currentSet[u] = true
	}

	var deleted []string
	for url := range s.state.URLStates {
		if !currentSet[url] {
			deleted = append(deleted, url)
		}
	}
	sort.Strings(deleted)
	return deleted
}

// UpdateStats records aggregate counters and stamps last_crawl.
func (s *StateStore) UpdateStats(totalPages, totalChunks int) {
	now := s.now()
	s.state.TotalPages = totalPages
	s.state.TotalChunks = totalChunks
	s.state.LastCrawl = &now
}

// State returns a copy of the current state. The url_states map is copied
// so callers cannot mutate store internals.
func (s *StateStore) State() docdex.CrawlState {
	out := s.state
	out.URLStates = make(map[string]docdex.URLState, len(s.state.URLStates))
	for k, v := range s.state.URLStates {
		out.URLStates[k] = v
	}
	return out
}
