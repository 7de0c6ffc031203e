package driven

import (
	"context"

	"github.com/tarifbot/tarifbot/internal/core/domain"
)

// VectorIndex stores document embeddings and provides similarity search.
// The index is written once by the offline build and opened read-only by
// the online query path. Duplicate documents across builds are tolerated;
// the index makes no deduplication guarantee.
type VectorIndex interface {
	// Add inserts a document together with its embedding. Insertion
	// order is preserved and used to break similarity ties in Search.
	Add(ctx context.Context, doc domain.Document, embedding []float32) error

	// Search finds the k nearest documents to the query embedding,
	// most similar first. If fewer than k documents exist, all of them
	// are returned. k must be >= 1.
	Search(ctx context.Context, query []float32, k int) ([]domain.SearchResult, error)

	// Count returns the number of stored documents.
	Count(ctx context.Context) (int, error)

	// Dimensions returns the embedding dimension the index was built
	// with, or 0 if nothing has been added yet.
	Dimensions(ctx context.Context) (int, error)

	// Close releases resources.
	Close() error
}
