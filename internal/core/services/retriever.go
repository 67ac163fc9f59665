package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/meridian-labs/stratagem-cli/internal/core/domain"
	"github.com/meridian-labs/stratagem-cli/internal/core/ports/driven"
	"github.com/meridian-labs/stratagem-cli/internal/logger"
)

// DefaultTopK is the default number of passages retrieved per query.
const DefaultTopK = 5

// Retriever embeds a question and finds the most similar chunks.
type Retriever struct {
	embedder driven.EmbeddingService
	index    driven.VectorIndex
}

// NewRetriever creates a retriever over the given capabilities.
func NewRetriever(embedder driven.EmbeddingService, index driven.VectorIndex) *Retriever {
	return &Retriever{embedder: embedder, index: index}
}

// Retrieve returns up to topK chunks ranked by descending similarity to
// the query. A label restricts the search to matching chunks; "" means
// unfiltered. Degenerate inputs (topK <= 0, a query that embeds to the
// zero vector) yield an empty result rather than an error; a sparse
// index returns what it has.
func (r *Retriever) Retrieve(ctx context.Context, query string, topK int, label domain.Label) ([]domain.RetrievedChunk, error) {
	if r.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if r.index == nil {
		return nil, domain.ErrVectorIndexUnavailable
	}

	if topK <= 0 {
		return []domain.RetrievedChunk{}, nil
	}

	logger.Section("Retrieval")
	logger.Debug("Query: %q, topK=%d, label=%q", query, topK, label)

	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if isZeroVector(vector) {
		logger.Warn("Query embedded to a zero vector, returning no results")
		return []domain.RetrievedChunk{}, nil
	}

	matches, err := r.index.Query(ctx, vector, topK, driven.Filter{Label: label})
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	logger.Debug("Vector search: %d hits", len(matches))

	results := make([]domain.RetrievedChunk, len(matches))
	for i, m := range matches {
		results[i] = domain.RetrievedChunk{
			DocumentID: m.DocumentID,
			Filename:   m.Filename,
			Seq:        m.Seq,
			Text:       m.Text,
			Label:      m.Label,
			Score:      m.Score,
		}
	}

	// Deterministic order: score descending, then original chunk order
	// within a document, then document identity.
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if results[i].DocumentID == results[j].DocumentID {
			return results[i].Seq < results[j].Seq
		}
		return results[i].DocumentID < results[j].DocumentID
	})

	return results, nil
}

func isZeroVector(v []float32) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}
