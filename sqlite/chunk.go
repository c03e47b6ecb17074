package sqlite

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/fwojciec/docdex"
)

// Compile-time interface verification.
var _ docdex.ChunkService = (*ChunkService)(nil)

// ChunkService implements docdex.ChunkService using SQLite.
type ChunkService struct {
	db *DB
}

// NewChunkService creates a new ChunkService.
func NewChunkService(db *DB) *ChunkService {
	return &ChunkService{db: db}
}

const chunkColumns = "id, document_id, chunk_index, content, heading_context, url, path, title, category, subcategory, breadcrumb, content_hash"

// UpsertChunks inserts or replaces chunks by ID within one transaction,
// so a document's chunk set is never observed half-written.
func (s *ChunkService) UpsertChunks(ctx context.Context, chunks []docdex.DocumentChunk) error {
	if len(chunks) == 0 {
		return nil
	}

	for i := range chunks {
		if err := chunks[i].Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO chunks (`+chunkColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range chunks {
		headings, err := marshalStrings(c.HeadingContext)
		if err != nil {
			return err
		}
		breadcrumb, err := marshalStrings(c.Metadata.Breadcrumb)
		if err != nil {
			return err
		}

		if _, err := stmt.ExecContext(ctx,
			c.ID, c.DocumentID, c.ChunkIndex, c.Content, headings,
			c.Metadata.URL, c.Metadata.Path, c.Metadata.Title,
			c.Metadata.Category, c.Metadata.Subcategory, breadcrumb,
			c.Metadata.ContentHash,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// DeleteChunksByDocument removes all chunks for a document.
// Removing a document with no chunks is not an error.
func (s *ChunkService) DeleteChunksByDocument(ctx context.Context, documentID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM chunks WHERE document_id = ?", documentID)
	return err
}

// FindChunks retrieves chunks matching the filter, ordered by document ID
// then chunk index.
func (s *ChunkService) FindChunks(ctx context.Context, filter docdex.ChunkFilter) ([]docdex.DocumentChunk, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + chunkColumns + " FROM chunks WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.DocumentID != nil {
		query.WriteString(" AND document_id = ?")
		args = append(args, *filter.DocumentID)
	}
	if filter.Path != nil {
		query.WriteString(" AND path = ?")
		args = append(args, *filter.Path)
	}
	if filter.Category != nil {
		query.WriteString(" AND category = ?")
		args = append(args, *filter.Category)
	}

	query.WriteString(" ORDER BY document_id ASC, chunk_index ASC")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chunks []docdex.DocumentChunk
	for rows.Next() {
		var c docdex.DocumentChunk
		var headings, breadcrumb string

		if err := rows.Scan(&c.ID, &c.DocumentID, &c.ChunkIndex, &c.Content,
			&headings, &c.Metadata.URL, &c.Metadata.Path, &c.Metadata.Title,
			&c.Metadata.Category, &c.Metadata.Subcategory, &breadcrumb,
			&c.Metadata.ContentHash); err != nil {
			return nil, err
		}

		if c.HeadingContext, err = unmarshalStrings(headings); err != nil {
			return nil, err
		}
		if c.Metadata.Breadcrumb, err = unmarshalStrings(breadcrumb); err != nil {
			return nil, err
		}

		chunks = append(chunks, c)
	}

	return chunks, rows.Err()
}

// CountChunks returns the total number of stored chunks.
func (s *ChunkService) CountChunks(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks").Scan(&count)
	return count, err
}

// marshalStrings encodes a string slice as a JSON text column value.
// Nil encodes as the empty array so scans round-trip cleanly.
func marshalStrings(values []string) (string, error) {
	if values == nil {
		return "[]", nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// unmarshalStrings decodes a JSON text column into a string slice.
// The empty array decodes to nil.
func unmarshalStrings(data string) ([]string, error) {
	if data == "" || data == "[]" {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(data), &values); err != nil {
		return nil, err
	}
	return values, nil
}
