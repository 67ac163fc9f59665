package extractors

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/meridian-labs/stratagem-cli/internal/core/ports/driven"
)

// Ensure Plaintext implements the interface.
var _ driven.TextExtractor = (*Plaintext)(nil)

// Plaintext handles .txt uploads. Input is decoded as UTF-8, falling
// back to Latin-1 for legacy exports that are not valid UTF-8.
type Plaintext struct{}

// NewPlaintext creates a plain text extractor.
func NewPlaintext() *Plaintext {
	return &Plaintext{}
}

// Extensions returns the file extensions this extractor handles.
func (p *Plaintext) Extensions() []string {
	return []string{".txt", ".text", ".log", ".csv"}
}

// Extract decodes the file bytes to text.
func (p *Plaintext) Extract(_ context.Context, data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}

	// Latin-1: every byte maps 1:1 to the code point of the same value.
	var b strings.Builder
	b.Grow(len(data))
	for _, c := range data {
		b.WriteRune(rune(c))
	}
	return b.String(), nil
}
