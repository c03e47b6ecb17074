package docdex

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// DocumentMetadata describes a crawled documentation page. It is derived
// once per fetched page and attached by value to every chunk produced from
// that page, so chunks are self-describing in the downstream store.
type DocumentMetadata struct {
	URL         string   `json:"url"`
	Path        string   `json:"path"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Subcategory string   `json:"subcategory,omitempty"`
	Breadcrumb  []string `json:"breadcrumb,omitempty"`
	ContentHash string   `json:"contentHash"`
}

// Validate returns an error if the metadata contains invalid fields.
func (m *DocumentMetadata) Validate() error {
	if m.URL == "" {
		return Errorf(EINVALID, "document URL required")
	}
	if m.Path == "" {
		return Errorf(EINVALID, "document path required")
	}
	return nil
}

// DocumentChunk is a bounded-size span of a document's text, tagged with
// its position and the heading hierarchy active at that position.
// Chunks are immutable value objects; the full chunk set for a document
// is replaced atomically when the document changes.
type DocumentChunk struct {
	ID             string           `json:"id"`
	DocumentID     string           `json:"documentId"`
	Content        string           `json:"content"`
	ChunkIndex     int              `json:"chunkIndex"`
	HeadingContext []string         `json:"headingContext,omitempty"`
	Metadata       DocumentMetadata `json:"metadata"`
}

// Validate returns an error if the chunk contains invalid fields.
func (c *DocumentChunk) Validate() error {
	if c.DocumentID == "" {
		return Errorf(EINVALID, "chunk document ID required")
	}
	if c.Content == "" {
		return Errorf(EINVALID, "chunk content required")
	}
	if c.ChunkIndex < 0 {
		return Errorf(EINVALID, "chunk index must not be negative")
	}
	return nil
}

// Hash computes a fast, non-cryptographic digest of s using xxHash,
// rendered as lowercase hex. It is used both for content change detection
// and for deriving document IDs from URLs; collisions are an accepted,
// extremely low-probability risk, not a correctness concern.
func Hash(s string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(s))
}

// DocumentID derives the stable document identifier for a page URL.
// Identical across runs, so chunk identity needs no separate allocator.
func DocumentID(url string) string {
	return Hash(url)
}

// ChunkID derives a chunk identifier from its document ID and index.
func ChunkID(documentID string, index int) string {
	return documentID + "_" + strconv.Itoa(index)
}
