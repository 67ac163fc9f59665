package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/meridian-labs/stratagem-cli/internal/core/domain"
	"github.com/meridian-labs/stratagem-cli/internal/core/ports/driven"
	"github.com/meridian-labs/stratagem-cli/internal/core/ports/driving"
	"github.com/meridian-labs/stratagem-cli/internal/logger"
)

// Ensure AskService implements the interface.
var _ driving.AskService = (*AskService)(nil)

// AskService answers strategic questions: retrieve, compose, record.
type AskService struct {
	retriever *Retriever
	composer  *Composer
	queries   driven.QueryStore

	now func() time.Time
}

// NewAskService creates an ask service. The query store is optional; a
// nil store disables history recording.
func NewAskService(retriever *Retriever, composer *Composer, queries driven.QueryStore) *AskService {
	return &AskService{
		retriever: retriever,
		composer:  composer,
		queries:   queries,
		now:       time.Now,
	}
}

// Ask runs the full query flow. Provider failures surface to the caller
// with their kind intact so it can decide retry versus abort; an empty
// evidence set is not a failure and takes the fixed fallback path.
func (s *AskService) Ask(ctx context.Context, query string, opts driving.AskOptions) (*domain.QueryResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}

	label, err := parseFilter(opts.LabelFilter)
	if err != nil {
		return nil, err
	}

	topK := opts.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}

	matches, err := s.retriever.Retrieve(ctx, query, topK, label)
	if err != nil {
		return nil, err
	}

	answer, err := s.composer.Compose(ctx, query, matches)
	if err != nil {
		return nil, err
	}

	result := &domain.QueryResult{
		Query:   query,
		Matches: matches,
		Answer:  answer,
		AskedAt: s.now(),
	}

	if s.queries != nil {
		rec := &domain.QueryRecord{
			ID:         uuid.New().String(),
			Query:      query,
			Answer:     answer.Text,
			Citations:  answer.Citations,
			Confidence: answer.Confidence,
			AskedAt:    result.AskedAt,
		}
		if err := s.queries.SaveQuery(ctx, rec); err != nil {
			// History is bookkeeping, not part of the answer.
			logger.Warn("Recording query history failed: %v", err)
		}
	}

	return result, nil
}

// parseFilter maps the caller's filter string to a label. "" and "all"
// mean unfiltered.
func parseFilter(filter string) (domain.Label, error) {
	if filter == "" || filter == "all" {
		return "", nil
	}
	return domain.ParseLabel(filter)
}
