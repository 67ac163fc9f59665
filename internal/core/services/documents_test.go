package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-labs/stratagem-cli/internal/core/domain"
)

func seedDoc(docs *fakeDocStore, id string, label domain.Label) {
	docs.docs[id] = &domain.Document{
		ID:         id,
		Filename:   id + ".txt",
		Label:      label,
		Status:     domain.IndexCompleted,
		UploadedAt: time.Now(),
	}
}

func TestDocuments_List(t *testing.T) {
	docs := newFakeDocStore()
	seedDoc(docs, "doc-1", domain.LabelFinancial)
	seedDoc(docs, "doc-2", domain.LabelGeneral)
	svc := NewDocumentService(docs, nil, NewIndexer(&fakeEmbedder{}, newFakeIndex()), nil, nil, nil)

	listed, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, listed, 2)
}

func TestDocuments_Delete(t *testing.T) {
	docs := newFakeDocStore()
	seedDoc(docs, "doc-1", domain.LabelFinancial)
	index := newFakeIndex()
	index.records["doc_doc-1_chunk_0"] = domain.EmbeddingRecord{ID: "doc_doc-1_chunk_0", DocumentID: "doc-1"}
	svc := NewDocumentService(docs, nil, NewIndexer(&fakeEmbedder{}, index), index, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), "doc-1"))

	assert.Empty(t, index.records)
	assert.Empty(t, docs.docs)
	assert.Equal(t, []string{"doc-1"}, docs.deleted)
}

func TestDocuments_DeleteUnknown(t *testing.T) {
	svc := NewDocumentService(newFakeDocStore(), nil, NewIndexer(&fakeEmbedder{}, newFakeIndex()), nil, nil, nil)

	err := svc.Delete(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocuments_DeleteVectorFailureKeepsRow(t *testing.T) {
	docs := newFakeDocStore()
	seedDoc(docs, "doc-1", domain.LabelFinancial)
	index := newFakeIndex()
	index.deleteErr = errors.New("index offline")
	svc := NewDocumentService(docs, nil, NewIndexer(&fakeEmbedder{}, index), index, nil, nil)

	err := svc.Delete(context.Background(), "doc-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "remove vectors")
	// The row survives so the document stays visible and retryable.
	assert.Len(t, docs.docs, 1)
}

func TestDocuments_History(t *testing.T) {
	queries := &fakeQueryStore{}
	for i := 0; i < 15; i++ {
		queries.records = append(queries.records, domain.QueryRecord{ID: string(rune('a' + i))})
	}
	svc := NewDocumentService(newFakeDocStore(), queries, NewIndexer(&fakeEmbedder{}, newFakeIndex()), nil, nil, nil)

	recs, err := svc.History(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, recs, 3)

	// Zero and negative limits fall back to the default.
	recs, err = svc.History(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, recs, DefaultHistoryLimit)
}

func TestDocuments_HistoryNilStore(t *testing.T) {
	svc := NewDocumentService(newFakeDocStore(), nil, NewIndexer(&fakeEmbedder{}, newFakeIndex()), nil, nil, nil)

	recs, err := svc.History(context.Background(), 5)

	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestDocuments_Stats(t *testing.T) {
	docs := newFakeDocStore()
	seedDoc(docs, "doc-1", domain.LabelFinancial)
	seedDoc(docs, "doc-2", domain.LabelFinancial)
	seedDoc(docs, "doc-3", domain.LabelInternal)

	queries := &fakeQueryStore{records: []domain.QueryRecord{{}, {}}}

	index := newFakeIndex()
	index.records["v1"] = domain.EmbeddingRecord{ID: "v1"}
	index.records["v2"] = domain.EmbeddingRecord{ID: "v2"}

	embedder := &fakeEmbedder{}
	llm := &fakeLLM{}
	svc := NewDocumentService(docs, queries, NewIndexer(embedder, index), index, embedder, llm)

	stats, err := svc.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, stats.Documents)
	assert.Equal(t, 2, stats.ByLabel[domain.LabelFinancial])
	assert.Equal(t, 1, stats.ByLabel[domain.LabelInternal])
	assert.Equal(t, 2, stats.Queries)
	assert.Equal(t, 2, stats.Vectors)
	assert.Equal(t, "fake-embedder", stats.EmbeddingModel)
	assert.Equal(t, "fake-llm", stats.CompletionModel)
	assert.True(t, stats.EmbeddingReachable)
	assert.True(t, stats.CompletionReachable)
}

func TestDocuments_StatsUnreachableProviderNotFatal(t *testing.T) {
	docs := newFakeDocStore()
	embedder := &fakeEmbedder{pingErr: errors.New("connection refused")}
	llm := &fakeLLM{pingErr: errors.New("connection refused")}
	svc := NewDocumentService(docs, nil, NewIndexer(embedder, newFakeIndex()), nil, embedder, llm)

	stats, err := svc.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "fake-embedder", stats.EmbeddingModel)
	assert.False(t, stats.EmbeddingReachable)
	assert.False(t, stats.CompletionReachable)
}

func TestDocuments_StatsWithoutOptionalCapabilities(t *testing.T) {
	docs := newFakeDocStore()
	seedDoc(docs, "doc-1", domain.LabelGeneral)
	svc := NewDocumentService(docs, nil, NewIndexer(&fakeEmbedder{}, newFakeIndex()), nil, nil, nil)

	stats, err := svc.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, stats.Documents)
	assert.Zero(t, stats.Queries)
	assert.Zero(t, stats.Vectors)
	assert.Empty(t, stats.EmbeddingModel)
	assert.Empty(t, stats.CompletionModel)
}
