package mock

import (
	"context"

	"github.com/fwojciec/docdex"
)

var _ docdex.ChunkService = (*ChunkService)(nil)

// ChunkService is a mock implementation of docdex.ChunkService.
type ChunkService struct {
	UpsertChunksFn           func(ctx context.Context, chunks []docdex.DocumentChunk) error
	DeleteChunksByDocumentFn func(ctx context.Context, documentID string) error
	FindChunksFn             func(ctx context.Context, filter docdex.ChunkFilter) ([]docdex.DocumentChunk, error)
	CountChunksFn            func(ctx context.Context) (int, error)
}

func (s *ChunkService) UpsertChunks(ctx context.Context, chunks []docdex.DocumentChunk) error {
	return s.UpsertChunksFn(ctx, chunks)
}

func (s *ChunkService) DeleteChunksByDocument(ctx context.Context, documentID string) error {
	return s.DeleteChunksByDocumentFn(ctx, documentID)
}

func (s *ChunkService) FindChunks(ctx context.Context, filter docdex.ChunkFilter) ([]docdex.DocumentChunk, error) {
	return s.FindChunksFn(ctx, filter)
}

func (s *ChunkService) CountChunks(ctx context.Context) (int, error) {
	return s.CountChunksFn(ctx)
}
