package main

import (
	"fmt"

	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/crawl"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	opts := crawl.Options{
		Full:    c.Full,
		NewOnly: c.NewOnly,
		Limit:   c.Limit,
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Crawling %d pages\n", event.Total)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		case crawl.ProgressFinished:
			// Summary printed after crawl completes
		}
	}

	result, err := deps.Crawler.Run(deps.Ctx, opts, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Found %d URLs: %d updated, %d unchanged, %d skipped, %d failed\n",
		result.Found, result.Updated, result.Unchanged, result.Skipped, result.Failed)
	if result.Deleted > 0 {
		fmt.Fprintf(deps.Stdout, "Removed %d deleted pages from the index\n", result.Deleted)
	}
	fmt.Fprintf(deps.Stdout, "Wrote %d chunks", result.Chunks)
	if result.Tokens > 0 {
		fmt.Fprintf(deps.Stdout, " (~%d tokens)", result.Tokens)
	}
	fmt.Fprintln(deps.Stdout)

	return nil
}
