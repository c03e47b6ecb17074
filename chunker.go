package docdex

import (
	"regexp"
	"strings"
)

// Chunking defaults, tuned for retrieval-sized embedding inputs.
const (
	DefaultMaxChunkTokens     = 1000
	DefaultChunkOverlapTokens = 100
	tokensPerWord             = 1.3
)

// headingRe matches an ATX markdown heading of level 1-6 on a single line.
var headingRe = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)

// Chunker splits normalized markdown into an ordered sequence of
// bounded-size chunks, preserving the heading hierarchy per chunk.
//
// The token budget is a soft packing target, not a hard cap: a single
// paragraph larger than the budget is emitted whole, never truncated.
// Heading level skips (e.g. H1 directly followed by H3) are accepted
// without validation; the context stack is truncated to level-1 and
// extended, which handles real-world documents that skip levels.
type Chunker struct {
	// MaxChunkTokens is the per-chunk token budget.
	MaxChunkTokens int

	// OverlapTokens is accepted for configuration compatibility but the
	// packing pass produces no overlap between adjacent chunks.
	OverlapTokens int
}

// NewChunker creates a Chunker. Non-positive maxTokens falls back to
// DefaultMaxChunkTokens.
func NewChunker(maxTokens, overlapTokens int) *Chunker {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxChunkTokens
	}
	return &Chunker{
		MaxChunkTokens: maxTokens,
		OverlapTokens:  overlapTokens,
	}
}

// EstimateTokens approximates the token count of text as word count * 1.3.
// It is deliberately not a real tokenizer; change detection and size parity
// only need both sides of a comparison to use the same approximation.
func EstimateTokens(text string) int {
	return int(float64(len(strings.Fields(text))) * tokensPerWord)
}

// section is a maximal run of lines between heading boundaries, tagged with
// the heading-context stack value at the time the section began.
type section struct {
	headings []string
	text     string
}

// Chunk splits content into document chunks. Chunk indices are contiguous
// from 0 across the entire document; whitespace-only candidates are skipped
// without consuming an index slot. Chunking is pure: identical input and
// configuration produce byte-identical chunks.
func (c *Chunker) Chunk(content string, meta DocumentMetadata) []DocumentChunk {
	documentID := DocumentID(meta.URL)
	sections := splitByHeadings(content)

	var chunks []DocumentChunk
	index := 0

	for _, sec := range sections {
		for _, text := range c.chunkSection(sec.text) {
			if strings.TrimSpace(text) == "" {
				continue
			}
			chunks = append(chunks, DocumentChunk{
				ID:             ChunkID(documentID, index),
				DocumentID:     documentID,
				Content:        text,
				ChunkIndex:     index,
				HeadingContext: sec.headings,
				Metadata:       meta,
			})
			index++
		}
	}

	return chunks
}

// splitByHeadings scans lines and cuts a new section at every heading,
// including the heading line in the section it starts. Sections with only
// whitespace content are dropped.
func splitByHeadings(content string) []section {
	lines := strings.Split(content, "\n")

	var sections []section
	var headings []string
	var current []string

	flush := func() {
		if len(current) == 0 {
			return
		}
		text := strings.TrimSpace(strings.Join(current, "\n"))
		if text != "" {
			sections = append(sections, section{
				headings: append([]string(nil), headings...),
				text:     text,
			})
		}
		current = current[:0]
	}

	for _, line := range lines {
		m := headingRe.FindStringSubmatch(line)
		if m == nil {
			current = append(current, line)
			continue
		}

		flush()

		// Truncate the stack to the parent level, then push. Skipped
		// levels simply extend the truncated stack.
		level := len(m[1])
		if level-1 < len(headings) {
			headings = headings[:level-1]
		}
		headings = append(headings, strings.TrimSpace(m[2]))

		current = append(current, line)
	}
	flush()

	return sections
}

// chunkSection returns the section verbatim when it fits the budget,
// otherwise packs blank-line-delimited paragraphs greedily into chunks.
func (c *Chunker) chunkSection(text string) []string {
	if EstimateTokens(text) <= c.MaxChunkTokens {
		return []string{text}
	}

	paragraphs := strings.Split(text, "\n\n")

	var chunks []string
	var current []string
	currentTokens := 0

	for _, para := range paragraphs {
		paraTokens := EstimateTokens(para)

		if currentTokens+paraTokens > c.MaxChunkTokens {
			if len(current) > 0 {
				chunks = append(chunks, strings.Join(current, "\n\n"))
			}
			current = []string{para}
			currentTokens = paraTokens
		} else {
			current = append(current, para)
			currentTokens += paraTokens
		}
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, "\n\n"))
	}

	return chunks
}
