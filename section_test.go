package docdex_test

import (
	"testing"

	"github.com/fwojciec/docdex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sectionChunk(path, title, category string, index int) docdex.DocumentChunk {
	documentID := docdex.DocumentID("https://docs.example.com" + path)
	return docdex.DocumentChunk{
		ID:         docdex.ChunkID(documentID, index),
		DocumentID: documentID,
		Content:    "content",
		ChunkIndex: index,
		Metadata: docdex.DocumentMetadata{
			URL:      "https://docs.example.com" + path,
			Path:     path,
			Title:    title,
			Category: category,
		},
	}
}

func TestBuildSectionIndex(t *testing.T) {
	t.Parallel()

	t.Run("deduplicates chunks by page path", func(t *testing.T) {
		t.Parallel()

		chunks := []docdex.DocumentChunk{
			sectionChunk("/aws/en/compute/clusters", "Clusters", "compute", 0),
			sectionChunk("/aws/en/compute/clusters", "Clusters", "compute", 1),
			sectionChunk("/aws/en/compute/clusters", "Clusters", "compute", 2),
		}

		index := docdex.BuildSectionIndex(chunks)

		assert.Equal(t, 1, index.TotalCount)
		require.Len(t, index.Sections, 1)
		assert.Equal(t, "Clusters", index.Sections[0].Title)
	})

	t.Run("sorts by category then title", func(t *testing.T) {
		t.Parallel()

		chunks := []docdex.DocumentChunk{
			sectionChunk("/aws/en/sql/queries", "Queries", "sql", 0),
			sectionChunk("/aws/en/compute/pools", "Pools", "compute", 0),
			sectionChunk("/aws/en/compute/clusters", "Clusters", "compute", 0),
		}

		index := docdex.BuildSectionIndex(chunks)

		require.Len(t, index.Sections, 3)
		assert.Equal(t, "Clusters", index.Sections[0].Title)
		assert.Equal(t, "Pools", index.Sections[1].Title)
		assert.Equal(t, "Queries", index.Sections[2].Title)
		assert.Equal(t, []string{"compute", "sql"}, index.Categories)
	})

	t.Run("counts children for parent paths", func(t *testing.T) {
		t.Parallel()

		chunks := []docdex.DocumentChunk{
			sectionChunk("/aws/en/compute", "Compute", "compute", 0),
			sectionChunk("/aws/en/compute/clusters", "Clusters", "compute", 0),
			sectionChunk("/aws/en/compute/pools", "Pools", "compute", 0),
		}

		index := docdex.BuildSectionIndex(chunks)

		byTitle := make(map[string]docdex.Section)
		for _, s := range index.Sections {
			byTitle[s.Title] = s
		}
		assert.Equal(t, 2, byTitle["Compute"].ChildCount)
		assert.Equal(t, 0, byTitle["Clusters"].ChildCount)
	})

	t.Run("fills missing category and title", func(t *testing.T) {
		t.Parallel()

		chunks := []docdex.DocumentChunk{
			sectionChunk("/page", "", "", 0),
		}

		index := docdex.BuildSectionIndex(chunks)

		require.Len(t, index.Sections, 1)
		assert.Equal(t, "Untitled", index.Sections[0].Title)
		assert.Equal(t, "other", index.Sections[0].Category)
	})

	t.Run("empty input produces empty index", func(t *testing.T) {
		t.Parallel()

		index := docdex.BuildSectionIndex(nil)

		assert.Equal(t, 0, index.TotalCount)
		assert.Empty(t, index.Sections)
		assert.Empty(t, index.Categories)
	})
}

func TestCategoryUseCases(t *testing.T) {
	t.Parallel()

	t.Run("known category", func(t *testing.T) {
		t.Parallel()
		assert.Contains(t, docdex.CategoryUseCases("compute"), "Create and manage clusters")
	})

	t.Run("unknown category falls back", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"General documentation"}, docdex.CategoryUseCases("nope"))
	})
}
