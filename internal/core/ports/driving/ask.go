package driving

import (
	"context"

	"github.com/meridian-labs/stratagem-cli/internal/core/domain"
)

// AskService answers strategic questions against the indexed corpus.
type AskService interface {
	// Ask retrieves evidence for the query, composes a cited answer and
	// records the exchange in the query history.
	Ask(ctx context.Context, query string, opts AskOptions) (*domain.QueryResult, error)
}

// AskOptions configures a question.
type AskOptions struct {
	// TopK is the number of passages to retrieve (default 5).
	TopK int

	// LabelFilter restricts retrieval to one classification label.
	// "" and "all" mean unfiltered.
	LabelFilter string
}
