package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/docdex"
)

// Run executes the sections command.
func (c *SectionsCmd) Run(deps *Dependencies) error {
	filter := docdex.ChunkFilter{}
	if c.Category != "" {
		filter.Category = &c.Category
	}

	chunks, err := deps.Chunks.FindChunks(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	index := docdex.BuildSectionIndex(chunks)
	if index.TotalCount == 0 {
		fmt.Fprintln(deps.Stdout, "No sections indexed. Run 'docdex crawl' to build the index.")
		return nil
	}

	category := ""
	for _, s := range index.Sections {
		if s.Category != category {
			category = s.Category
			uses := docdex.CategoryUseCases(category)
			fmt.Fprintf(deps.Stdout, "%s  (%s)\n", category, strings.Join(uses, ", "))
		}
		fmt.Fprintf(deps.Stdout, "  %-40s %s", s.Title, s.Path)
		if s.ChildCount > 0 {
			fmt.Fprintf(deps.Stdout, "  [%d children]", s.ChildCount)
		}
		fmt.Fprintln(deps.Stdout)
	}
	fmt.Fprintf(deps.Stdout, "\n%d sections in %d categories\n", index.TotalCount, len(index.Categories))

	return nil
}
