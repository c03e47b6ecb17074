package main

import (
	"fmt"
)

// Run executes the status command.
func (c *StatusCmd) Run(deps *Dependencies) error {
	state := deps.State.State()

	if state.LastCrawl == nil {
		fmt.Fprintln(deps.Stdout, "No crawl recorded yet. Run 'docdex crawl' to build the index.")
		return nil
	}

	chunks, err := deps.Chunks.CountChunks(deps.Ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Last crawl:   %s\n", state.LastCrawl.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(deps.Stdout, "Pages known:  %d\n", len(state.URLStates))
	fmt.Fprintf(deps.Stdout, "Total pages:  %d\n", state.TotalPages)
	fmt.Fprintf(deps.Stdout, "Total chunks: %d\n", chunks)

	return nil
}
