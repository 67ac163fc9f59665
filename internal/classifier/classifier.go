// Package classifier assigns documents a category label from lexical signal.
//
// This is a deterministic keyword heuristic, not a statistical model:
// every decision can be explained as a per-category score, and the rule
// table is supplied as configuration so an alternative classifier can be
// substituted without touching callers.
package classifier

import (
	"strings"

	"github.com/meridian-labs/stratagem-cli/internal/core/domain"
)

// DefaultPrefixLen bounds how much document text is scanned. A fixed
// prefix is enough signal and keeps cost flat on large documents.
const DefaultPrefixLen = 2000

// DefaultFilenameWeight is the multiplier for term hits in the filename,
// which carry more signal than hits in body text.
const DefaultFilenameWeight = 2

// Rules maps each label to its signal terms. The table is treated as
// immutable once handed to a Classifier.
type Rules map[domain.Label][]string

// DefaultRules returns the built-in signal-term table.
func DefaultRules() Rules {
	return Rules{
		domain.LabelFinancial: {
			"revenue", "profit", "budget", "financial", "income", "expense",
			"balance sheet", "cash flow", "roi", "investment", "ebitda",
		},
		domain.LabelMarketResearch: {
			"market", "research", "survey", "analysis", "competitor",
			"customer", "trend", "demographic", "segment",
		},
		domain.LabelInternal: {
			"employee", "hr", "human resources", "policy", "procedure",
			"internal", "staff", "team", "organization", "memo", "confidential",
		},
	}
}

// Classifier scores documents against a fixed rule table.
type Classifier struct {
	rules          Rules
	prefixLen      int
	filenameWeight int
}

// Option configures the classifier.
type Option func(*Classifier)

// WithPrefixLen sets how many leading characters of text are scanned.
func WithPrefixLen(n int) Option {
	return func(c *Classifier) {
		if n > 0 {
			c.prefixLen = n
		}
	}
}

// WithFilenameWeight sets the multiplier for filename term hits.
func WithFilenameWeight(w int) Option {
	return func(c *Classifier) {
		if w > 0 {
			c.filenameWeight = w
		}
	}
}

// New creates a classifier over the given rule table.
// A nil table falls back to DefaultRules.
func New(rules Rules, opts ...Option) *Classifier {
	if rules == nil {
		rules = DefaultRules()
	}

	c := &Classifier{
		rules:          rules,
		prefixLen:      DefaultPrefixLen,
		filenameWeight: DefaultFilenameWeight,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Classify picks the label with the highest non-zero score. Ties break
// by the fixed priority order of domain.Labels; an all-zero score yields
// LabelGeneral.
func (c *Classifier) Classify(filename, text string) domain.Label {
	scores := c.Explain(filename, text)

	best := domain.LabelGeneral
	bestScore := 0
	for _, label := range domain.Labels() {
		if scores[label] > bestScore {
			best = label
			bestScore = scores[label]
		}
	}

	return best
}

// Explain returns the per-label score breakdown behind a Classify
// decision. Callers surface this when a user asks why a label was chosen.
//
// Terms match as substrings, not words: "hr" scores inside "throughout".
// Short terms in a custom rule table should be chosen with that in mind.
func (c *Classifier) Explain(filename, text string) map[domain.Label]int {
	name := strings.ToLower(filename)

	prefix := text
	if len(prefix) > c.prefixLen {
		prefix = prefix[:c.prefixLen]
	}
	prefix = strings.ToLower(prefix)

	scores := make(map[domain.Label]int, len(c.rules))
	for label, terms := range c.rules {
		score := 0
		for _, term := range terms {
			score += c.filenameWeight * strings.Count(name, term)
			score += strings.Count(prefix, term)
		}
		scores[label] = score
	}

	return scores
}
