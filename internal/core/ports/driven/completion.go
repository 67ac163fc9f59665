package driven

import "context"

// CompletionService synthesizes answer text from a prompt and context.
//
// Failures are reported as *domain.ProviderError and surfaced to the
// caller as a query-level failure, never papered over with a fabricated
// answer.
type CompletionService interface {
	// Complete sends a system instruction and a user turn and returns
	// the generated text.
	Complete(ctx context.Context, system, user string, opts CompleteOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// CompleteOptions configures generation behaviour.
type CompleteOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64
}
