package domain

import (
	"fmt"
	"time"
)

// Label is a document classification category.
// The set is closed: retrieval filters and the classifier both work
// against these four values only.
type Label string

// Classification labels in tie-break priority order.
const (
	LabelFinancial      Label = "financial"
	LabelMarketResearch Label = "market_research"
	LabelInternal       Label = "internal"
	LabelGeneral        Label = "general"
)

// Labels returns all labels in priority order (highest first).
// The classifier uses this order to break score ties deterministically.
func Labels() []Label {
	return []Label{LabelFinancial, LabelMarketResearch, LabelInternal, LabelGeneral}
}

// ParseLabel validates a label string.
func ParseLabel(s string) (Label, error) {
	for _, l := range Labels() {
		if string(l) == s {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: unknown label %q", ErrInvalidInput, s)
}

// IndexStatus tracks whether a document's chunks made it into the vector index.
type IndexStatus string

const (
	// IndexPending means the document row exists but indexing has not finished.
	IndexPending IndexStatus = "pending"

	// IndexCompleted means every chunk of the document is in the vector index.
	IndexCompleted IndexStatus = "completed"

	// IndexFailed means indexing failed and no vectors for the document remain.
	IndexFailed IndexStatus = "failed"
)

// Document represents an ingested business document.
// Content is immutable once extracted; re-processing replaces the
// document's chunk set wholesale.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Filename is the original upload name, used for citations.
	Filename string

	// Content is the full extracted text.
	Content string

	// Label is the classification category, auto-detected or caller-supplied.
	Label Label

	// Status reflects the outcome of the last indexing attempt.
	Status IndexStatus

	// WordCount and CharCount are extraction metadata.
	WordCount int
	CharCount int

	// UploadedAt is when the document was ingested.
	UploadedAt time.Time
}

// Chunk is a contiguous substring of a document's text, the unit of
// embedding and retrieval. Chunks are immutable once created.
type Chunk struct {
	// DocumentID links to the parent Document.
	DocumentID string

	// Seq is the 0-based position within the document. Order is
	// significant downstream: it provides citation context and breaks
	// retrieval score ties.
	Seq int

	// Start and End are character offsets into the source text.
	// Adjacent chunks overlap: Start of chunk i+1 precedes End of
	// chunk i by exactly the configured overlap.
	Start int
	End   int

	// Text is the literal substring [Start:End) of the source.
	Text string

	// Label is inherited from the document.
	Label Label
}

// VectorID derives the identifier for this chunk's embedding record.
// It is deterministic so re-indexing overwrites rather than accumulates.
func (c Chunk) VectorID() string {
	return fmt.Sprintf("doc_%s_chunk_%d", c.DocumentID, c.Seq)
}

// EmbeddingRecord pairs a chunk's vector with the metadata the vector
// store needs for filtering and for returning displayable results. The
// chunk text rides along as metadata so query results never re-derive it.
type EmbeddingRecord struct {
	ID         string
	Vector     []float32
	DocumentID string
	Filename   string
	Label      Label
	Seq        int
	Text       string
}
