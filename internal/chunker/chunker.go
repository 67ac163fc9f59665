// Package chunker splits document text into overlapping, sentence-aware chunks.
package chunker

import (
	"fmt"

	"github.com/meridian-labs/stratagem-cli/internal/core/domain"
)

// DefaultSize is the default number of characters per chunk.
const DefaultSize = 1000

// DefaultOverlap is the default number of overlapping characters.
const DefaultOverlap = 200

// Chunker splits text into chunks of roughly fixed size, preferring to
// cut at sentence boundaries near the nominal window edge.
type Chunker struct {
	size    int
	overlap int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithSize sets the chunk size in characters.
func WithSize(size int) Option {
	return func(c *Chunker) {
		c.size = size
	}
}

// WithOverlap sets the overlap between adjacent chunks in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		c.overlap = overlap
	}
}

// New creates a chunker. The overlap must be non-negative and strictly
// smaller than the size; anything else is a configuration error and is
// rejected before any document is processed.
func New(opts ...Option) (*Chunker, error) {
	c := &Chunker{
		size:    DefaultSize,
		overlap: DefaultOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.size <= 0 {
		return nil, fmt.Errorf("%w: size %d must be positive", domain.ErrInvalidChunking, c.size)
	}
	if c.overlap < 0 || c.overlap >= c.size {
		return nil, fmt.Errorf("%w: overlap %d must be in [0, size %d)", domain.ErrInvalidChunking, c.overlap, c.size)
	}

	return c, nil
}

// Size returns the configured chunk size.
func (c *Chunker) Size() int { return c.size }

// Overlap returns the configured overlap width.
func (c *Chunker) Overlap() int { return c.overlap }

// Split cuts text into ordered chunks for the given document. Chunks are
// exact substrings of text: concatenating them with the overlaps removed
// reconstructs the input. Empty text yields no chunks; text no longer
// than the chunk size yields exactly one.
func (c *Chunker) Split(docID string, label domain.Label, text string) []domain.Chunk {
	if text == "" {
		return nil
	}

	if len(text) <= c.size {
		return []domain.Chunk{{
			DocumentID: docID,
			Seq:        0,
			Start:      0,
			End:        len(text),
			Text:       text,
			Label:      label,
		}}
	}

	// Boundary search range either side of the nominal cut.
	reach := c.size / 5

	chunks := make([]domain.Chunk, 0, len(text)/(c.size-c.overlap)+1)
	start := 0

	for start < len(text) {
		end := start + c.size
		if end >= len(text) {
			end = len(text)
		} else if cut, ok := c.sentenceCut(text, start, end, reach); ok {
			end = cut
		}

		chunks = append(chunks, domain.Chunk{
			DocumentID: docID,
			Seq:        len(chunks),
			Start:      start,
			End:        end,
			Text:       text[start:end],
			Label:      label,
		})

		if end == len(text) {
			break
		}

		next := end - c.overlap
		if next <= start {
			// Degenerate geometry (tiny window after a retracted cut);
			// give up the overlap rather than loop.
			next = end
		}
		start = next
	}

	return chunks
}

// sentenceCut looks for a sentence ending near the nominal cut offset,
// scanning outward up to reach characters in both directions. It returns
// the position just after the terminator, so the punctuation stays with
// the chunk that contains the sentence.
func (c *Chunker) sentenceCut(text string, start, end, reach int) (int, bool) {
	for delta := 0; delta <= reach; delta++ {
		// Prefer extending: a slightly long chunk keeps the sentence whole.
		if fwd := end + delta; fwd < len(text) && isSentenceEnd(text, fwd-1) && fwd-1 > start {
			return fwd, true
		}
		if back := end - delta; back > start+1 && isSentenceEnd(text, back-1) {
			return back, true
		}
	}
	return 0, false
}

// isSentenceEnd reports whether text[i] terminates a sentence: one of
// '.', '!', '?' followed by whitespace or end of text.
func isSentenceEnd(text string, i int) bool {
	switch text[i] {
	case '.', '!', '?':
	default:
		return false
	}
	if i+1 >= len(text) {
		return true
	}
	switch text[i+1] {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}
