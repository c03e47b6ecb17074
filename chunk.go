package docdex

import "context"

// ChunkService represents the content store for document chunks.
// Implementations must preserve per-chunk metadata verbatim.
type ChunkService interface {
	// UpsertChunks inserts or replaces chunks by ID.
	UpsertChunks(ctx context.Context, chunks []DocumentChunk) error

	// DeleteChunksByDocument removes all chunks belonging to a document.
	// Deleting a document with no stored chunks is not an error.
	DeleteChunksByDocument(ctx context.Context, documentID string) error

	// FindChunks retrieves chunks matching the filter, ordered by
	// document ID then chunk index.
	FindChunks(ctx context.Context, filter ChunkFilter) ([]DocumentChunk, error)

	// CountChunks returns the total number of stored chunks.
	CountChunks(ctx context.Context) (int, error)
}

// ChunkFilter represents a filter for FindChunks.
type ChunkFilter struct {
	ID         *string `json:"id"`
	DocumentID *string `json:"documentId"`
	Path       *string `json:"path"`
	Category   *string `json:"category"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
