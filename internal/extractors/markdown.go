package extractors

import (
	"context"
	"regexp"
	"strings"

	"github.com/meridian-labs/stratagem-cli/internal/core/ports/driven"
)

// Ensure Markdown implements the interface.
var _ driven.TextExtractor = (*Markdown)(nil)

// Markdown handles .md uploads by stripping formatting down to plain
// text. This is a simplified conversion that handles common cases; code
// blocks are dropped since they carry no strategic signal.
type Markdown struct{}

// NewMarkdown creates a Markdown extractor.
func NewMarkdown() *Markdown {
	return &Markdown{}
}

// Extensions returns the file extensions this extractor handles.
func (m *Markdown) Extensions() []string {
	return []string{".md", ".markdown"}
}

var (
	mdCodeBlock  = regexp.MustCompile("(?s)```[^`]*```")
	mdInlineCode = regexp.MustCompile("`[^`]+`")
	mdImage      = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	mdLink       = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	mdHeading    = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	mdEmphasis   = regexp.MustCompile(`(\*{1,3}|_{1,3})([^*_]+)(\*{1,3}|_{1,3})`)
)

// Extract converts markdown bytes to plain text.
func (m *Markdown) Extract(ctx context.Context, data []byte) (string, error) {
	text, err := NewPlaintext().Extract(ctx, data)
	if err != nil {
		return "", err
	}

	text = mdCodeBlock.ReplaceAllString(text, "")
	text = mdImage.ReplaceAllString(text, "")
	text = mdLink.ReplaceAllString(text, "$1")
	text = mdInlineCode.ReplaceAllString(text, "")
	text = mdHeading.ReplaceAllString(text, "")
	text = mdEmphasis.ReplaceAllString(text, "$2")

	return strings.TrimSpace(text), nil
}
