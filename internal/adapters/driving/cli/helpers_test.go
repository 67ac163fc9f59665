package cli

import (
	"context"
	"errors"
	"time"

	"github.com/meridian-labs/stratagem-cli/internal/core/domain"
	"github.com/meridian-labs/stratagem-cli/internal/core/ports/driving"
)

// setupTestServices installs mock services and returns a cleanup that
// restores the previous wiring.
func setupTestServices() func() {
	oldIngest := ingestService
	oldAsk := askService
	oldDocs := documentService

	ingestService = &mockIngestService{}
	askService = &mockAskService{}
	documentService = &mockDocumentService{}

	return func() {
		ingestService = oldIngest
		askService = oldAsk
		documentService = oldDocs
	}
}

type mockIngestService struct {
	lastLabel string
	err       error
}

func (m *mockIngestService) Upload(_ context.Context, filename string, _ []byte, labelOverride string) (*driving.UploadReceipt, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.lastLabel = labelOverride
	return &driving.UploadReceipt{
		DocumentID: "doc-mock",
		Filename:   filename,
		Label:      domain.LabelFinancial,
		Status:     domain.IndexCompleted,
		ChunkCount: 3,
		WordCount:  42,
		CharCount:  256,
	}, nil
}

type mockAskService struct {
	lastCtx context.Context
	err     error
}

func (m *mockAskService) Ask(ctx context.Context, query string, _ driving.AskOptions) (*domain.QueryResult, error) {
	m.lastCtx = ctx
	if m.err != nil {
		return nil, m.err
	}
	return &domain.QueryResult{
		Query: query,
		Answer: domain.Answer{
			Text:       "Expand into the northern market.",
			Citations:  []string{"q1_report.txt"},
			Confidence: 0.74,
			ChunksUsed: 2,
		},
		AskedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}, nil
}

type mockDocumentService struct {
	docs    []domain.Document
	deleted []string
	err     error
}

func (m *mockDocumentService) List(_ context.Context) ([]domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.docs, nil
}

func (m *mockDocumentService) Delete(_ context.Context, documentID string) error {
	if m.err != nil {
		return m.err
	}
	m.deleted = append(m.deleted, documentID)
	return nil
}

func (m *mockDocumentService) History(_ context.Context, _ int) ([]domain.QueryRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	return []domain.QueryRecord{
		{
			ID:         "q-1",
			Query:      "What drove revenue growth?",
			Answer:     "New contracts.\nDetails follow.",
			Citations:  []string{"q1_report.txt"},
			Confidence: 0.8,
			AskedAt:    time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
		},
	}, nil
}

func (m *mockDocumentService) Stats(_ context.Context) (*driving.EngineStats, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &driving.EngineStats{
		Documents:           2,
		ByLabel:             map[domain.Label]int{domain.LabelFinancial: 2},
		Queries:             5,
		Vectors:             17,
		EmbeddingModel:      "text-embedding-3-small",
		CompletionModel:     "gpt-4o-mini",
		EmbeddingReachable:  true,
		CompletionReachable: true,
	}, nil
}

var errMock = errors.New("mock failure")
