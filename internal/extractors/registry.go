// Package extractors turns uploaded file bytes into plain text.
//
// Extractors are selected by file extension. Formats without a
// registered extractor fail with domain.ErrUnsupportedFormat; the ingest
// pipeline treats any extraction failure as "document yields no chunks".
package extractors

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/meridian-labs/stratagem-cli/internal/core/domain"
	"github.com/meridian-labs/stratagem-cli/internal/core/ports/driven"
)

// Registry dispatches extraction by file extension.
type Registry struct {
	byExt map[string]driven.TextExtractor
}

// NewRegistry creates a registry with the given extractors.
func NewRegistry(extractors ...driven.TextExtractor) *Registry {
	r := &Registry{byExt: make(map[string]driven.TextExtractor)}
	for _, e := range extractors {
		r.Register(e)
	}
	return r
}

// DefaultRegistry returns a registry with the built-in extractors.
func DefaultRegistry() *Registry {
	return NewRegistry(NewPlaintext(), NewMarkdown())
}

// Register adds an extractor for each of its extensions.
// Later registrations win on conflict.
func (r *Registry) Register(e driven.TextExtractor) {
	for _, ext := range e.Extensions() {
		r.byExt[strings.ToLower(ext)] = e
	}
}

// Extract converts file bytes to text using the extractor registered for
// the filename's extension.
func (r *Registry) Extract(ctx context.Context, filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	e, ok := r.byExt[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, ext)
	}

	return e.Extract(ctx, data)
}
