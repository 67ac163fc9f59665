package driving

import (
	"context"

	"github.com/meridian-labs/stratagem-cli/internal/core/domain"
)

// IngestService runs the upload pipeline: extract, classify, chunk, index.
type IngestService interface {
	// Upload processes one document. labelOverride of "" or "auto"
	// triggers automatic classification; otherwise it must name a valid
	// label and classification is skipped entirely.
	//
	// Extraction failures are recovered locally: the receipt carries a
	// failed status and zero chunks, and no error is returned.
	Upload(ctx context.Context, filename string, data []byte, labelOverride string) (*UploadReceipt, error)
}

// UploadReceipt summarises one processed upload.
type UploadReceipt struct {
	DocumentID string
	Filename   string
	Label      domain.Label
	Status     domain.IndexStatus
	ChunkCount int
	WordCount  int
	CharCount  int

	// FailReason explains a failed status (extraction or indexing).
	FailReason string
}
