package driving

import (
	"context"

	"github.com/tarifbot/tarifbot/internal/core/domain"
)

// AskService answers one free-text question per call, grounded in the
// recipe index. There is no conversational memory between calls.
type AskService interface {
	// Ask runs the full pipeline: query expansion, retrieval, context
	// assembly and answer generation. A failure in any external call
	// is returned to the caller; the service itself never retries.
	Ask(ctx context.Context, question string) (domain.Answer, error)
}
