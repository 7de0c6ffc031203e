package driven

import (
	"context"

	"github.com/tarifbot/tarifbot/internal/core/domain"
)

// RecipeSource reads raw recipe records from a dataset.
// Records are returned in file order; callers rely on that order being
// stable across runs.
type RecipeSource interface {
	// Load reads at most limit records, skipping the dataset header.
	// A limit <= 0 means no cap.
	Load(ctx context.Context, limit int) ([]domain.RecipeRecord, error)
}

// Normaliser converts raw recipe records into canonical documents.
type Normaliser interface {
	// Normalise builds the Document for one record. It is total:
	// malformed input degrades to placeholders, never an error.
	Normalise(record domain.RecipeRecord) domain.Document

	// NormaliseBatch processes the first limit records in order and
	// returns one document per record, in input order. A limit <= 0
	// means all records.
	NormaliseBatch(records []domain.RecipeRecord, limit int) []domain.Document
}
