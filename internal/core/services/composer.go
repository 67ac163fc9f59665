package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/meridian-labs/stratagem-cli/internal/core/domain"
	"github.com/meridian-labs/stratagem-cli/internal/core/ports/driven"
	"github.com/meridian-labs/stratagem-cli/internal/logger"
)

// DefaultContextBudget bounds the assembled context in characters.
const DefaultContextBudget = 12000

// FallbackAnswer is returned when retrieval produced no evidence. The
// completion capability is not invoked in that case, so the engine never
// fabricates an answer with no grounding.
const FallbackAnswer = "I couldn't find relevant information in the uploaded documents to answer " +
	"your question. Please ensure you have uploaded relevant documents or try rephrasing your question."

// Composer assembles a bounded context from ranked passages and invokes
// completion to synthesize a cited answer.
type Composer struct {
	llm     driven.CompletionService
	prompts driven.PromptStore
	budget  int

	maxTokens   int
	temperature float64
}

// NewComposer creates a composer over the given capabilities.
func NewComposer(llm driven.CompletionService, prompts driven.PromptStore) *Composer {
	return &Composer{
		llm:         llm,
		prompts:     prompts,
		budget:      DefaultContextBudget,
		maxTokens:   1500,
		temperature: 0.3,
	}
}

// SetContextBudget overrides the context character budget. Values below
// 1 are ignored.
func (c *Composer) SetContextBudget(n int) {
	if n >= 1 {
		c.budget = n
	}
}

// Compose builds the context window from results in ranked order and
// generates the answer. Truncation drops whole chunks from the bottom of
// the ranking, never mid-chunk. The confidence on the returned answer is
// the mean similarity of the chunks that actually made it into the
// context: a retrieval-relevance proxy, not a correctness measure.
func (c *Composer) Compose(ctx context.Context, query string, results []domain.RetrievedChunk) (domain.Answer, error) {
	if len(results) == 0 {
		logger.Debug("No evidence retrieved, skipping completion")
		return domain.Answer{
			Text:       FallbackAnswer,
			Citations:  []string{},
			Confidence: 0.0,
		}, nil
	}

	if c.llm == nil {
		return domain.Answer{}, domain.ErrCompletionUnavailable
	}

	included, contextText := c.assembleContext(results)
	logger.Debug("Context: %d of %d chunks, %d chars", len(included), len(results), len(contextText))

	system, user, err := c.buildPrompt(contextText, query)
	if err != nil {
		return domain.Answer{}, err
	}

	text, err := c.llm.Complete(ctx, system, user, driven.CompleteOptions{
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		return domain.Answer{}, fmt.Errorf("complete: %w", err)
	}

	return domain.Answer{
		Text:       text,
		Citations:  citations(included),
		Confidence: meanScore(included),
		ChunksUsed: len(included),
	}, nil
}

// assembleContext concatenates chunk texts in ranked order, each
// prefixed with its source filename, until the budget is exhausted. The
// top-ranked chunk is always included so the context is never empty.
func (c *Composer) assembleContext(results []domain.RetrievedChunk) ([]domain.RetrievedChunk, string) {
	var b strings.Builder
	included := make([]domain.RetrievedChunk, 0, len(results))

	for _, r := range results {
		passage := fmt.Sprintf("[Source: %s]\n%s\n\n", r.Filename, r.Text)
		if len(included) > 0 && b.Len()+len(passage) > c.budget {
			break
		}
		b.WriteString(passage)
		included = append(included, r)
	}

	return included, strings.TrimRight(b.String(), "\n")
}

// buildPrompt loads the advisor system instruction and fills the
// analysis template with the assembled context and the literal query.
func (c *Composer) buildPrompt(contextText, query string) (system, user string, err error) {
	if c.prompts == nil {
		return "", "", fmt.Errorf("prompt store unavailable")
	}

	system, err = c.prompts.Load(driven.PromptAdvisorSystem)
	if err != nil {
		return "", "", fmt.Errorf("load system prompt: %w", err)
	}

	template, err := c.prompts.Load(driven.PromptAnalysisTemplate)
	if err != nil {
		return "", "", fmt.Errorf("load analysis template: %w", err)
	}

	return system, fmt.Sprintf(template, contextText, query), nil
}

// citations returns the distinct source filenames among the included
// chunks. The set is order-independent; it is sorted for stable output.
func citations(included []domain.RetrievedChunk) []string {
	seen := make(map[string]bool, len(included))
	names := make([]string, 0, len(included))
	for _, r := range included {
		if !seen[r.Filename] {
			seen[r.Filename] = true
			names = append(names, r.Filename)
		}
	}
	sort.Strings(names)
	return names
}

// meanScore averages the similarity scores of the included chunks.
func meanScore(included []domain.RetrievedChunk) float64 {
	if len(included) == 0 {
		return 0
	}
	total := 0.0
	for _, r := range included {
		total += r.Score
	}
	return total / float64(len(included))
}
