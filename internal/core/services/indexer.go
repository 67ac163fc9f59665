package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/meridian-labs/stratagem-cli/internal/core/domain"
	"github.com/meridian-labs/stratagem-cli/internal/core/ports/driven"
	"github.com/meridian-labs/stratagem-cli/internal/logger"
)

// DefaultEmbedBatchSize is how many chunk texts go into one embedding
// call. Matches the provider's recommended batch ceiling.
const DefaultEmbedBatchSize = 100

// IndexOutcome is the result of one indexing attempt. The persistence
// collaborator writes Status to the document row; the core never reaches
// into shared storage itself.
type IndexOutcome struct {
	Status domain.IndexStatus

	// Err explains a failed status.
	Err error
}

// Indexer turns chunks into embedding records and writes them to the
// vector index. A document's vectors are all-or-nothing: a failed
// attempt leaves no partial set behind.
type Indexer struct {
	embedder  driven.EmbeddingService
	index     driven.VectorIndex
	batchSize int

	// Operations on the same document are serialised so delete/upsert
	// pairs from concurrent attempts cannot interleave. Entries are
	// never removed; the map is bounded by the distinct documents one
	// process touches.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewIndexer creates an indexer over the given capabilities.
func NewIndexer(embedder driven.EmbeddingService, index driven.VectorIndex) *Indexer {
	return &Indexer{
		embedder:  embedder,
		index:     index,
		batchSize: DefaultEmbedBatchSize,
		locks:     make(map[string]*sync.Mutex),
	}
}

// SetBatchSize overrides the embedding batch size. Values below 1 are ignored.
func (ix *Indexer) SetBatchSize(n int) {
	if n >= 1 {
		ix.batchSize = n
	}
}

// Index embeds the chunks and upserts them as the document's complete
// vector set. Existing vectors for the document are deleted first, so
// re-indexing replaces rather than merges. On any failure the attempt
// rolls back to "no vectors for this document" and the outcome is failed.
func (ix *Indexer) Index(ctx context.Context, docID, filename string, chunks []domain.Chunk) IndexOutcome {
	if ix.embedder == nil {
		return IndexOutcome{Status: domain.IndexFailed, Err: domain.ErrEmbeddingUnavailable}
	}
	if ix.index == nil {
		return IndexOutcome{Status: domain.IndexFailed, Err: domain.ErrVectorIndexUnavailable}
	}

	unlock := ix.lockDocument(docID)
	defer unlock()

	logger.Section("Indexing")
	logger.Debug("Document %s: %d chunks", docID, len(chunks))

	// Replace, never merge.
	if err := ix.index.Delete(ctx, driven.Filter{DocumentID: docID}); err != nil {
		return IndexOutcome{Status: domain.IndexFailed, Err: fmt.Errorf("clear existing vectors: %w", err)}
	}

	if len(chunks) == 0 {
		return IndexOutcome{Status: domain.IndexCompleted}
	}

	records, err := ix.embedChunks(ctx, filename, chunks)
	if err != nil {
		return IndexOutcome{Status: domain.IndexFailed, Err: err}
	}

	if err := ix.index.Upsert(ctx, records); err != nil {
		ix.rollback(docID)
		return IndexOutcome{Status: domain.IndexFailed, Err: fmt.Errorf("upsert vectors: %w", err)}
	}

	logger.Info("Indexed %d chunks for %s", len(records), filename)
	return IndexOutcome{Status: domain.IndexCompleted}
}

// Deindex removes all of a document's vectors. Removing an absent
// document's vectors is not an error.
func (ix *Indexer) Deindex(ctx context.Context, docID string) error {
	if ix.index == nil {
		return domain.ErrVectorIndexUnavailable
	}

	unlock := ix.lockDocument(docID)
	defer unlock()

	if err := ix.index.Delete(ctx, driven.Filter{DocumentID: docID}); err != nil {
		return fmt.Errorf("deindex %s: %w", docID, err)
	}
	return nil
}

// embedChunks runs the chunk texts through the embedding service in
// batches and pairs each vector with its chunk metadata. All batches
// must succeed before the caller attempts the upsert.
func (ix *Indexer) embedChunks(ctx context.Context, filename string, chunks []domain.Chunk) ([]domain.EmbeddingRecord, error) {
	records := make([]domain.EmbeddingRecord, 0, len(chunks))

	for lo := 0; lo < len(chunks); lo += ix.batchSize {
		hi := lo + ix.batchSize
		if hi > len(chunks) {
			hi = len(chunks)
		}
		batch := chunks[lo:hi]

		texts := make([]string, len(batch))
		for i, ch := range batch {
			texts[i] = ch.Text
		}

		logger.Debug("Embedding batch %d-%d of %d", lo, hi, len(chunks))
		vectors, err := ix.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("embed batch at %d: %w", lo, err)
		}
		if len(vectors) != len(batch) {
			return nil, fmt.Errorf("embed batch at %d: got %d vectors for %d texts", lo, len(vectors), len(batch))
		}

		for i, ch := range batch {
			records = append(records, domain.EmbeddingRecord{
				ID:         ch.VectorID(),
				Vector:     vectors[i],
				DocumentID: ch.DocumentID,
				Filename:   filename,
				Label:      ch.Label,
				Seq:        ch.Seq,
				Text:       ch.Text,
			})
		}
	}

	return records, nil
}

// rollback clears any vectors the failed attempt may have committed.
// Best effort with a fresh context: the triggering failure may have been
// a cancellation.
func (ix *Indexer) rollback(docID string) {
	if err := ix.index.Delete(context.Background(), driven.Filter{DocumentID: docID}); err != nil {
		logger.Warn("Rollback for %s failed: %v", docID, err)
	}
}

// lockDocument acquires the per-document mutex, creating it on first use.
func (ix *Indexer) lockDocument(docID string) func() {
	ix.mu.Lock()
	l, ok := ix.locks[docID]
	if !ok {
		l = &sync.Mutex{}
		ix.locks[docID] = l
	}
	ix.mu.Unlock()

	l.Lock()
	return l.Unlock
}
