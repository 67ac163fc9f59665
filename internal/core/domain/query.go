package domain

import "time"

// RetrievedChunk is a single retrieval hit: the chunk text plus the
// provenance needed for citation and the similarity score that ranked it.
type RetrievedChunk struct {
	// DocumentID identifies the source document.
	DocumentID string

	// Filename is the source document's display name.
	Filename string

	// Seq is the chunk's position within its document.
	Seq int

	// Text is the literal chunk text as stored at index time.
	Text string

	// Label is the chunk's classification category.
	Label Label

	// Score is the cosine similarity against the query vector.
	Score float64
}

// Answer is the composed response to a strategic question.
type Answer struct {
	// Text is the synthesized answer, or the fixed fallback when no
	// evidence was retrieved.
	Text string

	// Citations is the set of distinct source filenames among the
	// chunks that made it into the assembled context.
	Citations []string

	// Confidence is the arithmetic mean of the similarity scores of
	// the chunks actually included in the context, in [0,1]. It is a
	// retrieval-relevance proxy, not a correctness guarantee.
	Confidence float64

	// ChunksUsed is how many retrieved chunks survived the context
	// budget and grounded the answer.
	ChunksUsed int
}

// QueryResult is the full payload for one answered question: the ranked
// evidence plus the composed answer. It is created fresh per query and
// returned in a shape the persistence collaborator can store verbatim.
type QueryResult struct {
	Query   string
	Matches []RetrievedChunk
	Answer  Answer
	AskedAt time.Time
}

// QueryRecord is the persisted form of an answered question.
type QueryRecord struct {
	ID         string
	Query      string
	Answer     string
	Citations  []string
	Confidence float64
	AskedAt    time.Time
}
