package driving

import (
	"context"

	"github.com/meridian-labs/stratagem-cli/internal/core/domain"
)

// DocumentService manages ingested documents and engine bookkeeping.
type DocumentService interface {
	// List returns all documents, newest first.
	List(ctx context.Context) ([]domain.Document, error)

	// Delete removes a document. Deletion cascades: the document's
	// vectors leave the index before the row is removed.
	Delete(ctx context.Context, documentID string) error

	// History returns the most recent answered questions.
	History(ctx context.Context, limit int) ([]domain.QueryRecord, error)

	// Stats reports corpus and engine statistics.
	Stats(ctx context.Context) (*EngineStats, error)
}

// EngineStats is a snapshot of the engine's state.
type EngineStats struct {
	Documents       int
	ByLabel         map[domain.Label]int
	Queries         int
	Vectors         int
	EmbeddingModel  string
	CompletionModel string

	// Reachability of the configured providers at snapshot time. An
	// unreachable provider is reported here, never treated as fatal.
	EmbeddingReachable  bool
	CompletionReachable bool
}
