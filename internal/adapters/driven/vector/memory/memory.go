// Package memory provides an in-process vector index backed by a map.
// It is the default backend when no external index is configured and is
// also used heavily in tests.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/meridian-labs/stratagem-cli/internal/core/domain"
	"github.com/meridian-labs/stratagem-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Index stores embedding records in memory and answers similarity
// queries by brute-force cosine scan.
type Index struct {
	mu      sync.RWMutex
	records map[string]domain.EmbeddingRecord
}

// NewIndex creates an empty in-memory index.
func NewIndex() *Index {
	return &Index{
		records: make(map[string]domain.EmbeddingRecord),
	}
}

// Upsert inserts the records, replacing any existing record with the
// same ID.
func (i *Index) Upsert(ctx context.Context, records []domain.EmbeddingRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	for _, r := range records {
		// Copy the vector so callers can reuse their slice.
		vec := make([]float32, len(r.Vector))
		copy(vec, r.Vector)
		r.Vector = vec
		i.records[r.ID] = r
	}
	return nil
}

// Query returns the topK records most similar to the given vector,
// restricted to records matching the filter. Results are ordered by
// descending score with ties broken by ID for determinism.
func (i *Index) Query(ctx context.Context, vector []float32, topK int, filter driven.Filter) ([]driven.VectorMatch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if topK <= 0 {
		return nil, nil
	}

	i.mu.RLock()
	defer i.mu.RUnlock()

	matches := make([]driven.VectorMatch, 0, len(i.records))
	for _, r := range i.records {
		if !filter.Matches(&r) {
			continue
		}
		matches = append(matches, driven.VectorMatch{
			ID:         r.ID,
			Score:      cosineSimilarity(vector, r.Vector),
			DocumentID: r.DocumentID,
			Filename:   r.Filename,
			Label:      r.Label,
			Seq:        r.Seq,
			Text:       r.Text,
		})
	}

	sort.Slice(matches, func(a, b int) bool {
		if matches[a].Score != matches[b].Score {
			return matches[a].Score > matches[b].Score
		}
		return matches[a].ID < matches[b].ID
	})

	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// Delete removes all records matching the filter. Deleting with an
// empty filter clears the index.
func (i *Index) Delete(ctx context.Context, filter driven.Filter) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	for id, r := range i.records {
		if filter.Matches(&r) {
			delete(i.records, id)
		}
	}
	return nil
}

// Count returns the number of stored records.
func (i *Index) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.records), nil
}

// Close releases resources.
func (i *Index) Close() error {
	return nil
}

// cosineSimilarity computes the cosine similarity between two vectors.
// Mismatched lengths or zero vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
