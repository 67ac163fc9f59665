package driven

import (
	"context"

	"github.com/meridian-labs/stratagem-cli/internal/core/domain"
)

// DocumentStore persists document bookkeeping rows.
// Backed by SQLite. The core algorithms never touch it directly; the
// service layer writes statuses returned by the indexer.
type DocumentStore interface {
	// SaveDocument stores a document row.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// SetStatus updates a document's indexing status.
	SetStatus(ctx context.Context, id string, status domain.IndexStatus) error

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// ListDocuments returns all documents, newest first.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// CountByLabel returns the number of documents per label.
	CountByLabel(ctx context.Context) (map[domain.Label]int, error)

	// DeleteDocument removes a document row.
	DeleteDocument(ctx context.Context, id string) error
}

// QueryStore persists answered questions.
type QueryStore interface {
	// SaveQuery stores a query record.
	SaveQuery(ctx context.Context, rec *domain.QueryRecord) error

	// ListQueries returns the most recent records, newest first.
	ListQueries(ctx context.Context, limit int) ([]domain.QueryRecord, error)

	// CountQueries returns the total number of stored records.
	CountQueries(ctx context.Context) (int, error)
}
