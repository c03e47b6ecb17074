// Package crawl orchestrates incremental indexing runs. It composes the
// sitemap resolver, fetcher, extractor, converter, chunker, chunk store,
// and crawl state store: it computes the URL worklist for a run mode,
// reconciles deletions, drives fetch->extract->chunk->store per URL, and
// persists updated state at the end of the run.
package crawl

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/fwojciec/docdex"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Crawler orchestrates a crawl run. Fetches run concurrently; chunking
// and state mutation happen on the orchestrator goroutine only.
type Crawler struct {
	Sitemaps     docdex.SitemapService
	Fetcher      docdex.Fetcher
	Extractor    docdex.Extractor
	Converter    docdex.Converter
	Chunker      *docdex.Chunker
	Chunks       docdex.ChunkService
	State        docdex.StateService
	TokenCounter docdex.TokenCounter // optional, statistics only
	RateLimiter  docdex.RateLimiter  // optional
	Logger       *slog.Logger        // optional

	// BaseURL is the site prefix stripped when deriving page paths
	// and categories.
	BaseURL string

	// Concurrency bounds in-flight fetches. Defaults to 5.
	Concurrency int

	// RetryDelays overrides fetch retry backoff. Defaults to 1s/2s/4s.
	RetryDelays []time.Duration
}

// Options selects the run mode.
type Options struct {
	// Full processes every resolved URL unconditionally, ignoring both
	// freshness and stored content hashes.
	Full bool

	// NewOnly processes only URLs that have never been crawled.
	NewOnly bool

	// Limit caps the worklist size. Zero means no cap.
	Limit int
}

// Validate rejects contradictory options before any network activity.
func (o Options) Validate() error {
	if o.Full && o.NewOnly {
		return docdex.Errorf(docdex.EINVALID, "full and new-only are mutually exclusive")
	}
	return nil
}

func (o Options) mode() string {
	switch {
	case o.Full:
		return "full"
	case o.NewOnly:
		return "new-only"
	default:
		return "incremental"
	}
}

// Result holds the outcome of a crawl run.
type Result struct {
	Found     int // URLs resolved from the sitemap (after limit)
	Skipped   int // excluded from the worklist by the run mode
	Unchanged int // re-fetched but identical content hash
	Updated   int // pages chunked and stored
	Failed    int // per-URL errors (fetch, extract, store)
	Deleted   int // documents removed during reconciliation
	Chunks    int // chunks written this run
	Tokens    int // tokens counted this run (0 without a TokenCounter)
}

// ProgressEvent reports progress during a crawl run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressFetched
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// fetchResult holds the outcome of fetching a single URL.
type fetchResult struct {
	position int
	url      string
	body     string
	err      error
}

// Run executes one crawl in the mode selected by opts. Per-URL failures
// are counted and never abort the run; a nil error with Result.Failed > 0
// is a completed run. The error return is reserved for configuration
// errors, sitemap resolution failures, and state persistence failures.
func (c *Crawler) Run(ctx context.Context, opts Options, progress ProgressFunc) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With("run_id", uuid.NewString(), "mode", opts.mode())

	urls, err := c.Sitemaps.FetchURLs(ctx)
	if err != nil {
		return nil, err
	}
	if opts.Limit > 0 && len(urls) > opts.Limit {
		urls = urls[:opts.Limit]
	}

	result := &Result{Found: len(urls)}
	logger.Info("sitemap resolved", "urls", len(urls))

	// Reconcile deletions before per-URL processing: pages gone from the
	// sitemap lose their chunks. Their url_states entries are kept; a
	// deleted-then-reappeared URL can therefore short-circuit on its old
	// hash. Known gap, preserved because fixing it changes re-crawl volume.
	if !opts.Full {
		for _, url := range c.State.DeletedURLs(urls) {
			if err := c.Chunks.DeleteChunksByDocument(ctx, docdex.DocumentID(url)); err != nil {
				logger.Warn("failed to delete chunks for removed page", "url", url, "err", err)
				continue
			}
			result.Deleted++
		}
		if result.Deleted > 0 {
			logger.Info("removed deleted pages from index", "count", result.Deleted)
		}
	}

	worklist := c.worklist(urls, opts)
	result.Skipped = len(urls) - len(worklist)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: len(worklist)})
	}

	if len(worklist) > 0 {
		c.process(ctx, worklist, opts, result, progress, logger)

		totalChunks := result.Chunks
		if count, err := c.Chunks.CountChunks(ctx); err == nil {
			totalChunks = count
		}
		c.State.UpdateStats(len(worklist), totalChunks)

		if err := c.State.Save(); err != nil {
			return result, err
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: len(worklist), Total: len(worklist)})
	}

	logger.Info("crawl finished",
		"updated", result.Updated,
		"unchanged", result.Unchanged,
		"skipped", result.Skipped,
		"failed", result.Failed,
		"chunks", result.Chunks,
	)

	return result, nil
}

// worklist applies the run mode to the resolved URL set.
func (c *Crawler) worklist(urls []string, opts Options) []string {
	switch {
	case opts.Full:
		return urls
	case opts.NewOnly:
		var out []string
		for _, url := range urls {
			if !c.State.HasBeenCrawled(url) {
				out = append(out, url)
			}
		}
		return out
	default:
		var out []string
		for _, url := range urls {
			if !c.State.IsFresh(url) {
				out = append(out, url)
			}
		}
		return out
	}
}

// process fetches the worklist concurrently, then walks the results in
// order on the orchestrator goroutine: hash short-circuit, extract,
// convert, chunk, replace the stored chunk set, and mark the URL crawled.
func (c *Crawler) process(ctx context.Context, worklist []string, opts Options, result *Result, progress ProgressFunc, logger *slog.Logger) {
	results := c.fetchAll(ctx, worklist, progress)

	chunker := c.Chunker
	if chunker == nil {
		chunker = docdex.NewChunker(0, 0)
	}

	for _, r := range results {
		// Cancellation is cooperative between URLs; a page's
		// chunk-and-store sequence runs to completion or failure.
		if ctx.Err() != nil {
			break
		}

		if r.err != nil {
			result.Failed++
			continue
		}

		contentHash := docdex.Hash(r.body)

		// Change-detection short-circuit: a re-fetched but unchanged
		// page skips chunking, store writes, and state updates.
		if !opts.Full && !c.State.NeedsUpdate(r.url, contentHash) {
			result.Unchanged++
			continue
		}

		chunks, markdown, err := c.processPage(r.url, r.body, contentHash, chunker)
		if err != nil {
			result.Failed++
			logger.Warn("failed to process page", "url", r.url, "err", err)
			continue
		}
		if len(chunks) == 0 {
			continue
		}

		// Replace the document's chunk set: delete then upsert, so
		// stale chunks from a previous version never linger.
		documentID := chunks[0].DocumentID
		if err := c.Chunks.DeleteChunksByDocument(ctx, documentID); err != nil {
			result.Failed++
			logger.Warn("failed to delete stale chunks", "url", r.url, "err", err)
			continue
		}
		if err := c.Chunks.UpsertChunks(ctx, chunks); err != nil {
			result.Failed++
			logger.Warn("failed to store chunks", "url", r.url, "err", err)
			continue
		}

		c.State.MarkCrawled(r.url, contentHash)
		result.Updated++
		result.Chunks += len(chunks)

		if c.TokenCounter != nil {
			if tokens, err := c.TokenCounter.CountTokens(ctx, markdown); err == nil {
				result.Tokens += tokens
			}
		}
	}
}

// fetchAll retrieves the worklist with bounded concurrency, a shared rate
// limit on fetch starts, and per-URL retry. Results are returned in
// worklist order.
func (c *Crawler) fetchAll(ctx context.Context, worklist []string, progress ProgressFunc) []fetchResult {
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = 5
	}

	resultCh := make(chan fetchResult, len(worklist))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, url := range worklist {
			g.Go(func() error {
				resultCh <- c.fetchOne(gctx, i, url)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var completed atomic.Int64
	results := make([]fetchResult, len(worklist))
	for r := range resultCh {
		completed.Add(1)
		results[r.position] = r

		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Completed: int(completed.Load()),
			Total:     len(worklist),
			URL:       r.url,
		}
		if r.err != nil {
			event.Type = ProgressFailed
			event.Error = r.err
		} else {
			event.Type = ProgressFetched
		}
		progress(event)
	}

	return results
}

func (c *Crawler) fetchOne(ctx context.Context, position int, url string) fetchResult {
	result := fetchResult{position: position, url: url}

	if c.RateLimiter != nil {
		if err := c.RateLimiter.Wait(ctx); err != nil {
			result.err = err
			return result
		}
	}

	result.body, result.err = FetchWithRetry(ctx, c.Fetcher, url, c.RetryDelays)
	return result
}

// processPage turns fetched page content into its chunk set.
func (c *Crawler) processPage(url, body, contentHash string, chunker *docdex.Chunker) ([]docdex.DocumentChunk, string, error) {
	extracted, err := c.Extractor.Extract(body)
	if err != nil {
		return nil, "", err
	}

	markdown, err := c.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		return nil, "", err
	}

	category, subcategory := docdex.Categorize(c.BaseURL, url)
	meta := docdex.DocumentMetadata{
		URL:         url,
		Path:        docdex.PagePath(c.BaseURL, url),
		Title:       extracted.Title,
		Category:    category,
		Subcategory: subcategory,
		Breadcrumb:  extracted.Breadcrumb,
		ContentHash: contentHash,
	}

	return chunker.Chunk(markdown, meta), markdown, nil
}
