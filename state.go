package docdex

import "time"

// DefaultFreshnessThreshold is how long a crawled URL is considered fresh.
// Fresh URLs are skipped without re-fetching in the default run mode.
const DefaultFreshnessThreshold = 7 * 24 * time.Hour

// URLState is the last-known crawl state for a single URL. The hash and
// timestamp always move together; a URLState is never partially updated.
type URLState struct {
	ContentHash string    `json:"content_hash"`
	LastFetched time.Time `json:"last_fetched"`
}

// CrawlState is the persisted root of the crawl state document. The
// url_states keys are exactly the URLs ever successfully crawled and not
// yet reconciled as deleted. Field names match the on-disk JSON document,
// which predates this implementation.
type CrawlState struct {
	LastCrawl   *time.Time          `json:"last_crawl,omitempty"`
	URLStates   map[string]URLState `json:"url_states"`
	TotalPages  int                 `json:"total_pages"`
	TotalChunks int                 `json:"total_chunks"`
}

// StateService answers freshness and change-detection queries over the
// persisted crawl state. Implementations are not safe for concurrent
// mutation; the orchestrator loop is the only writer.
type StateService interface {
	// Load reads the persisted state. A missing or malformed state file
	// initializes empty state instead of failing; startup is never
	// blocked by a corrupt cache.
	Load() error

	// Save durably persists the state with an atomic overwrite.
	Save() error

	// IsFresh reports whether url was fetched within the freshness
	// threshold. A URL with no state is never fresh.
	IsFresh(url string) bool

	// NeedsUpdate reports whether url has no prior state or its stored
	// hash differs from contentHash. Independent of freshness.
	NeedsUpdate(url, contentHash string) bool

	// MarkCrawled overwrites the state for url with the given hash and
	// the current time. In-memory only; durability requires Save.
	MarkCrawled(url, contentHash string)

	// HasBeenCrawled reports whether url has any state, fresh or not.
	HasBeenCrawled(url string) bool

	// DeletedURLs returns tracked URLs absent from current, sorted for
	// deterministic processing.
	DeletedURLs(current []string) []string

	// UpdateStats records aggregate counters and stamps last_crawl.
	UpdateStats(totalPages, totalChunks int)

	// State returns a snapshot of the current state for reporting.
	State() CrawlState
}
