// Package memory provides an in-memory vector index for tests and
// ephemeral runs. It mirrors the search semantics of the SQLite index:
// exact cosine similarity, insertion-order tie-break.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/tarifbot/tarifbot/internal/core/domain"
	"github.com/tarifbot/tarifbot/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Index is an in-memory vector index.
type Index struct {
	mu   sync.RWMutex
	dims int
	docs []entry
}

type entry struct {
	doc  domain.Document
	vec  []float32
	norm float64
}

// New creates an empty in-memory index. The dimension is fixed by the
// first Add.
func New() *Index {
	return &Index{}
}

// Add inserts a document and its embedding.
func (i *Index) Add(_ context.Context, doc domain.Document, embedding []float32) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.dims == 0 {
		i.dims = len(embedding)
	}
	if len(embedding) != i.dims {
		return fmt.Errorf("%w: embedding has %d dimensions, index expects %d",
			domain.ErrInvalidInput, len(embedding), i.dims)
	}

	i.docs = append(i.docs, entry{doc: doc, vec: embedding, norm: norm(embedding)})
	return nil
}

// Search returns the k most similar documents, most similar first.
func (i *Index) Search(_ context.Context, query []float32, k int) ([]domain.SearchResult, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: k must be >= 1", domain.ErrInvalidInput)
	}

	i.mu.RLock()
	defer i.mu.RUnlock()

	if i.dims != 0 && len(query) != i.dims {
		return nil, fmt.Errorf("%w: query has %d dimensions, index expects %d",
			domain.ErrInvalidInput, len(query), i.dims)
	}

	queryNorm := norm(query)
	scored := make([]domain.SearchResult, len(i.docs))
	for idx, e := range i.docs {
		sim := 0.0
		if queryNorm != 0 && e.norm != 0 {
			var dot float64
			for j := range query {
				dot += float64(query[j]) * float64(e.vec[j])
			}
			sim = dot / (queryNorm * e.norm)
		}
		scored[idx] = domain.SearchResult{Document: e.doc, Similarity: sim}
	}

	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].Similarity > scored[b].Similarity
	})

	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k], nil
}

// Count returns the number of stored documents.
func (i *Index) Count(_ context.Context) (int, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.docs), nil
}

// Dimensions returns the embedding dimension, or 0 when empty.
func (i *Index) Dimensions(_ context.Context) (int, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.dims, nil
}

// Close releases resources (no-op for the memory index).
func (i *Index) Close() error {
	return nil
}

func norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}
