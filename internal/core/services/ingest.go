package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/meridian-labs/stratagem-cli/internal/chunker"
	"github.com/meridian-labs/stratagem-cli/internal/classifier"
	"github.com/meridian-labs/stratagem-cli/internal/core/domain"
	"github.com/meridian-labs/stratagem-cli/internal/core/ports/driven"
	"github.com/meridian-labs/stratagem-cli/internal/core/ports/driving"
	"github.com/meridian-labs/stratagem-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService runs the upload pipeline: extract, classify, chunk,
// index, with bookkeeping written to the document store at each stage.
type IngestService struct {
	extractor  driven.Extractor
	classifier *classifier.Classifier
	chunker    *chunker.Chunker
	indexer    *Indexer
	docs       driven.DocumentStore

	now func() time.Time
}

// NewIngestService creates an ingest service.
func NewIngestService(
	extractor driven.Extractor,
	cls *classifier.Classifier,
	ch *chunker.Chunker,
	indexer *Indexer,
	docs driven.DocumentStore,
) *IngestService {
	return &IngestService{
		extractor:  extractor,
		classifier: cls,
		chunker:    ch,
		indexer:    indexer,
		docs:       docs,
		now:        time.Now,
	}
}

// Upload processes one document end to end. A failure to extract any
// text is recovered locally: the document is recorded as failed with
// zero chunks and other uploads are unaffected.
func (s *IngestService) Upload(ctx context.Context, filename string, data []byte, labelOverride string) (*driving.UploadReceipt, error) {
	logger.Section("Ingest")
	logger.Debug("Upload: %s (%d bytes)", filename, len(data))

	docID := uuid.New().String()

	text, err := s.extractText(ctx, filename, data)
	if err != nil {
		return s.recordFailure(ctx, docID, filename, labelOverride, err)
	}

	label, err := s.resolveLabel(filename, text, labelOverride)
	if err != nil {
		return nil, err
	}

	doc := &domain.Document{
		ID:         docID,
		Filename:   filename,
		Content:    text,
		Label:      label,
		Status:     domain.IndexPending,
		WordCount:  len(strings.Fields(text)),
		CharCount:  len(text),
		UploadedAt: s.now(),
	}
	if err := s.docs.SaveDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}

	chunks := s.chunker.Split(docID, label, text)
	logger.Debug("Chunked %s into %d chunks", filename, len(chunks))

	outcome := s.indexer.Index(ctx, docID, filename, chunks)
	if err := s.docs.SetStatus(ctx, docID, outcome.Status); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	receipt := &driving.UploadReceipt{
		DocumentID: docID,
		Filename:   filename,
		Label:      label,
		Status:     outcome.Status,
		ChunkCount: len(chunks),
		WordCount:  doc.WordCount,
		CharCount:  doc.CharCount,
	}
	if outcome.Err != nil {
		logger.Warn("Indexing %s failed: %v", filename, outcome.Err)
		receipt.FailReason = outcome.Err.Error()
	}
	return receipt, nil
}

// extractText pulls text out of the upload and rejects empty documents.
func (s *IngestService) extractText(ctx context.Context, filename string, data []byte) (string, error) {
	text, err := s.extractor.Extract(ctx, filename, data)
	if err != nil {
		return "", &domain.ExtractionError{Filename: filename, Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return "", &domain.ExtractionError{Filename: filename, Err: domain.ErrEmptyDocument}
	}
	return text, nil
}

// resolveLabel applies the caller's override or falls back to automatic
// classification. An explicit label skips classification entirely.
func (s *IngestService) resolveLabel(filename, text, override string) (domain.Label, error) {
	if override == "" || override == "auto" {
		label := s.classifier.Classify(filename, text)
		logger.Debug("Classified %s as %s (scores: %v)", filename, label, s.classifier.Explain(filename, text))
		return label, nil
	}
	return domain.ParseLabel(override)
}

// recordFailure books a failed document row for an upload that yielded
// no chunks, so the failure is visible alongside successful documents.
func (s *IngestService) recordFailure(ctx context.Context, docID, filename, labelOverride string, cause error) (*driving.UploadReceipt, error) {
	logger.Warn("Extraction failed for %s: %v", filename, cause)

	label := domain.LabelGeneral
	if parsed, err := domain.ParseLabel(labelOverride); err == nil {
		label = parsed
	}

	doc := &domain.Document{
		ID:         docID,
		Filename:   filename,
		Label:      label,
		Status:     domain.IndexFailed,
		UploadedAt: s.now(),
	}
	if err := s.docs.SaveDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("save failed document: %w", err)
	}

	return &driving.UploadReceipt{
		DocumentID: docID,
		Filename:   filename,
		Label:      label,
		Status:     domain.IndexFailed,
		FailReason: cause.Error(),
	}, nil
}
