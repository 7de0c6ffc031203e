package driven

import "context"

// LLMService provides language model operations for query expansion and
// grounded answer generation.
//
// Implementations may include:
//   - Gemini (gemini-2.0-flash)
//   - OpenAI (gpt-4o-mini)
//   - Ollama (local models)
type LLMService interface {
	// Generate produces a text completion from a prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ExpandQuery produces up to n semantically distinct reformulations
	// of a question, covering different facets (ingredient-based vs
	// dish-name-based framings). The original question is always the
	// first element of the returned slice. An error here is a hard
	// failure for the request; callers must not fall back to the single
	// original query.
	ExpandQuery(ctx context.Context, question string, n int) ([]string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request. Used at startup so misconfiguration fails before
	// serving begins.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}
