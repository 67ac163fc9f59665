package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-labs/stratagem-cli/internal/chunker"
	"github.com/meridian-labs/stratagem-cli/internal/classifier"
	"github.com/meridian-labs/stratagem-cli/internal/core/domain"
)

func newTestIngest(t *testing.T, index *fakeIndex, docs *fakeDocStore) *IngestService {
	t.Helper()
	ch, err := chunker.New()
	require.NoError(t, err)
	return NewIngestService(
		&fakeExtractor{},
		classifier.New(nil),
		ch,
		NewIndexer(&fakeEmbedder{}, index),
		docs,
	)
}

func TestIngest_Upload(t *testing.T) {
	index := newFakeIndex()
	docs := newFakeDocStore()
	svc := newTestIngest(t, index, docs)

	text := "Quarterly revenue grew fourteen percent. Profit margins held steady across the portfolio."
	receipt, err := svc.Upload(context.Background(), "q3_revenue.txt", []byte(text), "")

	require.NoError(t, err)
	assert.NotEmpty(t, receipt.DocumentID)
	assert.Equal(t, "q3_revenue.txt", receipt.Filename)
	assert.Equal(t, domain.LabelFinancial, receipt.Label)
	assert.Equal(t, domain.IndexCompleted, receipt.Status)
	assert.Equal(t, 1, receipt.ChunkCount)
	assert.Equal(t, 12, receipt.WordCount)
	assert.Equal(t, len(text), receipt.CharCount)
	assert.Empty(t, receipt.FailReason)

	doc, err := docs.GetDocument(context.Background(), receipt.DocumentID)
	require.NoError(t, err)
	assert.Equal(t, domain.IndexCompleted, doc.Status)
	assert.Equal(t, text, doc.Content)
	assert.Len(t, index.records, 1)
}

func TestIngest_UploadLabelOverride(t *testing.T) {
	svc := newTestIngest(t, newFakeIndex(), newFakeDocStore())

	// Body screams financial, but the caller knows better.
	receipt, err := svc.Upload(context.Background(), "notes.txt", []byte("revenue profit budget earnings"), "internal")

	require.NoError(t, err)
	assert.Equal(t, domain.LabelInternal, receipt.Label)
}

func TestIngest_UploadAutoKeyword(t *testing.T) {
	svc := newTestIngest(t, newFakeIndex(), newFakeDocStore())

	receipt, err := svc.Upload(context.Background(), "notes.txt", []byte("plain text with no signals"), "auto")

	require.NoError(t, err)
	assert.Equal(t, domain.LabelGeneral, receipt.Label)
}

func TestIngest_UploadInvalidLabel(t *testing.T) {
	docs := newFakeDocStore()
	svc := newTestIngest(t, newFakeIndex(), docs)

	_, err := svc.Upload(context.Background(), "notes.txt", []byte("text"), "bogus")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, docs.docs, "nothing should be recorded for a rejected label")
}

func TestIngest_UploadExtractionFailure(t *testing.T) {
	docs := newFakeDocStore()
	svc := newTestIngest(t, newFakeIndex(), docs)

	receipt, err := svc.Upload(context.Background(), "slides.bin", []byte{0x1}, "")

	// Extraction failures are booked, not bubbled.
	require.NoError(t, err)
	assert.Equal(t, domain.IndexFailed, receipt.Status)
	assert.Zero(t, receipt.ChunkCount)
	assert.Contains(t, receipt.FailReason, "slides.bin")
	assert.Equal(t, domain.LabelGeneral, receipt.Label)

	doc, err := docs.GetDocument(context.Background(), receipt.DocumentID)
	require.NoError(t, err)
	assert.Equal(t, domain.IndexFailed, doc.Status)
}

func TestIngest_UploadEmptyDocument(t *testing.T) {
	svc := newTestIngest(t, newFakeIndex(), newFakeDocStore())

	receipt, err := svc.Upload(context.Background(), "blank.txt", []byte("   \n\t "), "")

	require.NoError(t, err)
	assert.Equal(t, domain.IndexFailed, receipt.Status)
	assert.Contains(t, receipt.FailReason, domain.ErrEmptyDocument.Error())
}

func TestIngest_UploadFailureKeepsOverrideLabel(t *testing.T) {
	svc := newTestIngest(t, newFakeIndex(), newFakeDocStore())

	receipt, err := svc.Upload(context.Background(), "deck.bin", []byte{0x1}, "financial")

	require.NoError(t, err)
	assert.Equal(t, domain.LabelFinancial, receipt.Label)
}

func TestIngest_UploadIndexingFailureBooksStatus(t *testing.T) {
	index := newFakeIndex()
	index.upsertErr = errors.New("index offline")
	docs := newFakeDocStore()
	svc := newTestIngest(t, index, docs)

	receipt, err := svc.Upload(context.Background(), "notes.txt", []byte("some document text"), "")

	require.NoError(t, err)
	assert.Equal(t, domain.IndexFailed, receipt.Status)
	assert.Contains(t, receipt.FailReason, "upsert vectors")
	assert.Equal(t, 1, receipt.ChunkCount)

	doc, err := docs.GetDocument(context.Background(), receipt.DocumentID)
	require.NoError(t, err)
	assert.Equal(t, domain.IndexFailed, doc.Status)
	assert.Empty(t, index.records, "failed attempt must leave no vectors")
}

func TestIngest_UploadSaveError(t *testing.T) {
	docs := newFakeDocStore()
	docs.saveErr = errors.New("disk full")
	svc := newTestIngest(t, newFakeIndex(), docs)

	_, err := svc.Upload(context.Background(), "notes.txt", []byte("text"), "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "save document")
}
