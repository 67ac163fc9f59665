package services

import (
	"context"
	"fmt"

	"github.com/meridian-labs/stratagem-cli/internal/core/domain"
	"github.com/meridian-labs/stratagem-cli/internal/core/ports/driven"
	"github.com/meridian-labs/stratagem-cli/internal/core/ports/driving"
	"github.com/meridian-labs/stratagem-cli/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DefaultHistoryLimit bounds how many history records are listed by default.
const DefaultHistoryLimit = 10

// DocumentService manages ingested documents and engine statistics.
type DocumentService struct {
	docs    driven.DocumentStore
	queries driven.QueryStore
	indexer *Indexer
	index   driven.VectorIndex

	embedder driven.EmbeddingService
	llm      driven.CompletionService
}

// NewDocumentService creates a document service. The embedding and
// completion services are only consulted for stats and may be nil.
func NewDocumentService(
	docs driven.DocumentStore,
	queries driven.QueryStore,
	indexer *Indexer,
	index driven.VectorIndex,
	embedder driven.EmbeddingService,
	llm driven.CompletionService,
) *DocumentService {
	return &DocumentService{
		docs:     docs,
		queries:  queries,
		indexer:  indexer,
		index:    index,
		embedder: embedder,
		llm:      llm,
	}
}

// List returns all documents, newest first.
func (s *DocumentService) List(ctx context.Context) ([]domain.Document, error) {
	return s.docs.ListDocuments(ctx)
}

// Delete removes a document. The cascade order matters: vectors leave
// the index before the bookkeeping row goes, so a failed vector delete
// never strands invisible vectors.
func (s *DocumentService) Delete(ctx context.Context, documentID string) error {
	if _, err := s.docs.GetDocument(ctx, documentID); err != nil {
		return err
	}

	if err := s.indexer.Deindex(ctx, documentID); err != nil {
		return fmt.Errorf("remove vectors: %w", err)
	}

	if err := s.docs.DeleteDocument(ctx, documentID); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	logger.Info("Deleted document %s", documentID)
	return nil
}

// History returns the most recent answered questions.
func (s *DocumentService) History(ctx context.Context, limit int) ([]domain.QueryRecord, error) {
	if s.queries == nil {
		return []domain.QueryRecord{}, nil
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.queries.ListQueries(ctx, limit)
}

// Stats reports corpus and engine statistics. Capability outages are
// reported, not fatal: a missing vector count leaves zero in place.
func (s *DocumentService) Stats(ctx context.Context) (*driving.EngineStats, error) {
	stats := &driving.EngineStats{}

	docs, err := s.docs.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	stats.Documents = len(docs)

	stats.ByLabel, err = s.docs.CountByLabel(ctx)
	if err != nil {
		return nil, fmt.Errorf("count by label: %w", err)
	}

	if s.queries != nil {
		if n, err := s.queries.CountQueries(ctx); err == nil {
			stats.Queries = n
		}
	}

	if s.index != nil {
		n, err := s.index.Count(ctx)
		if err != nil {
			logger.Warn("Vector count unavailable: %v", err)
		} else {
			stats.Vectors = n
		}
	}

	if s.embedder != nil {
		stats.EmbeddingModel = s.embedder.ModelName()
		if err := s.embedder.Ping(ctx); err != nil {
			logger.Warn("Embedding service unreachable: %v", err)
		} else {
			stats.EmbeddingReachable = true
		}
	}
	if s.llm != nil {
		stats.CompletionModel = s.llm.ModelName()
		if err := s.llm.Ping(ctx); err != nil {
			logger.Warn("Completion service unreachable: %v", err)
		} else {
			stats.CompletionReachable = true
		}
	}

	return stats, nil
}
