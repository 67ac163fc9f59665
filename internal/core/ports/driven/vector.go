package driven

import (
	"context"

	"github.com/meridian-labs/stratagem-cli/internal/core/domain"
)

// VectorIndex stores embedding records and serves similarity queries.
// The configured metric is cosine similarity.
type VectorIndex interface {
	// Upsert writes records, replacing any existing records with the
	// same IDs. The indexer calls this once per document with the
	// document's full record set.
	Upsert(ctx context.Context, records []domain.EmbeddingRecord) error

	// Query returns the topK nearest records to the vector, restricted
	// to records matching the filter. Fewer than topK matches is not an
	// error.
	Query(ctx context.Context, vector []float32, topK int, filter Filter) ([]VectorMatch, error)

	// Delete removes all records matching the filter. Deleting records
	// that are already absent is not an error.
	Delete(ctx context.Context, filter Filter) error

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)

	// Close releases resources.
	Close() error
}

// Filter restricts vector operations by equality match. Zero-valued
// fields are unconstrained; the zero Filter matches everything.
type Filter struct {
	// DocumentID matches records belonging to one document.
	DocumentID string

	// Label matches records with one classification label.
	Label domain.Label
}

// Matches reports whether a record satisfies the filter.
func (f Filter) Matches(r *domain.EmbeddingRecord) bool {
	if f.DocumentID != "" && r.DocumentID != f.DocumentID {
		return false
	}
	if f.Label != "" && r.Label != f.Label {
		return false
	}
	return true
}

// VectorMatch is a similarity search result: the record's metadata plus
// its cosine similarity to the query vector.
type VectorMatch struct {
	ID         string
	Score      float64
	DocumentID string
	Filename   string
	Label      domain.Label
	Seq        int
	Text       string
}
