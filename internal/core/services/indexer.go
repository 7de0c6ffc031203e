package services

import (
	"context"
	"fmt"

	"github.com/tarifbot/tarifbot/internal/core/domain"
	"github.com/tarifbot/tarifbot/internal/core/ports/driven"
	"github.com/tarifbot/tarifbot/internal/core/ports/driving"
	"github.com/tarifbot/tarifbot/internal/logger"
)

// Ensure IndexerService implements the interface.
var _ driving.Indexer = (*IndexerService)(nil)

// IndexFactory creates an empty vector index for the given embedding
// dimension. It is called only after the corpus is known to be non-empty,
// so a failed build never leaves an empty index behind.
type IndexFactory func(dimensions int) (driven.VectorIndex, error)

// IndexerService runs the offline build: load records, normalise, embed
// in one batch, store.
type IndexerService struct {
	source           driven.RecipeSource
	normaliser       driven.Normaliser
	embeddingService driven.EmbeddingService
	newIndex         IndexFactory

	maxRecipes int
}

// NewIndexerService creates a new indexer service. maxRecipes <= 0 means
// the whole dataset is indexed.
func NewIndexerService(
	source driven.RecipeSource,
	normaliser driven.Normaliser,
	embeddingService driven.EmbeddingService,
	newIndex IndexFactory,
	maxRecipes int,
) *IndexerService {
	return &IndexerService{
		source:           source,
		normaliser:       normaliser,
		embeddingService: embeddingService,
		newIndex:         newIndex,
		maxRecipes:       maxRecipes,
	}
}

// Build constructs the vector index from the configured dataset.
func (s *IndexerService) Build(ctx context.Context) (driving.BuildSummary, error) {
	logger.Section("Index Build")

	records, err := s.source.Load(ctx, s.maxRecipes)
	if err != nil {
		return driving.BuildSummary{}, fmt.Errorf("load dataset: %w", err)
	}
	logger.Info("Loaded %d records", len(records))

	docs := s.normaliser.NormaliseBatch(records, s.maxRecipes)
	if len(docs) == 0 {
		return driving.BuildSummary{}, domain.ErrEmptyCorpus
	}
	logger.Info("Normalised %d documents", len(docs))

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Content
	}

	logger.Info("Embedding %d documents with %s", len(texts), s.embeddingService.ModelName())
	embeddings, err := s.embeddingService.EmbedBatch(ctx, texts)
	if err != nil {
		return driving.BuildSummary{}, fmt.Errorf("embed corpus: %w", err)
	}
	if len(embeddings) != len(docs) {
		return driving.BuildSummary{}, fmt.Errorf(
			"embedding count mismatch: %d documents, %d embeddings", len(docs), len(embeddings))
	}

	index, err := s.newIndex(s.embeddingService.Dimensions())
	if err != nil {
		return driving.BuildSummary{}, fmt.Errorf("create index: %w", err)
	}
	defer index.Close()

	for i, doc := range docs {
		if err := index.Add(ctx, doc, embeddings[i]); err != nil {
			return driving.BuildSummary{}, fmt.Errorf("store document %s: %w", doc.ID, err)
		}
	}

	logger.Info("Stored %d documents", len(docs))
	return driving.BuildSummary{
		Records:   len(records),
		Documents: len(docs),
	}, nil
}
