package driving

import "context"

// BuildSummary holds counts from one offline index build.
type BuildSummary struct {
	// Records is the number of dataset rows read.
	Records int

	// Documents is the number of documents embedded and stored.
	Documents int
}

// Indexer runs the offline build: load records, normalise, embed, store.
type Indexer interface {
	// Build constructs the vector index from the configured dataset.
	// It fails with domain.ErrEmptyCorpus when normalisation produced
	// zero documents, writing nothing in that case.
	Build(ctx context.Context) (BuildSummary, error)
}
