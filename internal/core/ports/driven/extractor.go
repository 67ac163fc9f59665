package driven

import "context"

// TextExtractor converts file bytes of one format into plain text.
type TextExtractor interface {
	// Extensions returns the file extensions this extractor handles,
	// lowercase with leading dot (".txt").
	Extensions() []string

	// Extract decodes the file bytes to text.
	Extract(ctx context.Context, data []byte) (string, error)
}

// Extractor is the extraction capability as the ingest pipeline sees it:
// format dispatch included. Failures wrap domain.ErrUnsupportedFormat or
// domain.ErrCorruptInput; the pipeline treats any failure as "document
// yields no chunks".
type Extractor interface {
	Extract(ctx context.Context, filename string, data []byte) (string, error)
}
