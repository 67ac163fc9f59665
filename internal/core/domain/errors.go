package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors. Callers decide retry
// versus abort from the error kind, so nothing here is a catch-all.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidChunking indicates an unusable chunker configuration
	// (overlap >= size). It is fatal and rejected before any processing.
	ErrInvalidChunking = errors.New("invalid chunking configuration")

	// ErrUnsupportedFormat indicates no extractor handles the file type.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrCorruptInput indicates the file bytes could not be decoded.
	ErrCorruptInput = errors.New("corrupt input")

	// ErrEmptyDocument indicates extraction succeeded but yielded no text.
	ErrEmptyDocument = errors.New("document contains no extractable text")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrCompletionUnavailable indicates the completion service is not configured.
	ErrCompletionUnavailable = errors.New("completion service unavailable")

	// ErrVectorIndexUnavailable indicates the vector index is not configured.
	ErrVectorIndexUnavailable = errors.New("vector index unavailable")
)

// ExtractionError wraps a text extraction failure. The ingest pipeline
// recovers locally: the document yields zero chunks and a failed status,
// and other documents are unaffected.
type ExtractionError struct {
	Filename string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Filename, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// ProviderError wraps a failure from an external capability (embedding,
// completion, or vector store). Retryable tells the caller whether the
// failure is transient.
type ProviderError struct {
	// Provider names the capability that failed ("embedding",
	// "completion", "vector").
	Provider string

	// Retryable is true for transient failures (timeouts, rate limits,
	// 5xx responses).
	Retryable bool

	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// IsRetryable reports whether err is a provider failure worth retrying.
func IsRetryable(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Retryable
}
