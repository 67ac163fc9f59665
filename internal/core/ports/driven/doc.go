// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
//
// The core never talks to a provider directly: every external capability
// (text extraction, embeddings, completion, vector search, persistence)
// enters through one of these interfaces so the core stays a pure
// function of its inputs and can be exercised with fakes.
package driven
