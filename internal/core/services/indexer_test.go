package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarifbot/tarifbot/internal/adapters/driven/vector/memory"
	"github.com/tarifbot/tarifbot/internal/core/domain"
	"github.com/tarifbot/tarifbot/internal/core/ports/driven"
	"github.com/tarifbot/tarifbot/internal/core/ports/driving"
	"github.com/tarifbot/tarifbot/internal/normalisers/recipe"
)

// mockRecipeSource implements driven.RecipeSource for testing.
type mockRecipeSource struct {
	records []domain.RecipeRecord
	loadErr error

	// Recorded calls.
	gotLimit int
}

func (m *mockRecipeSource) Load(_ context.Context, limit int) ([]domain.RecipeRecord, error) {
	m.gotLimit = limit
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if limit > 0 && limit < len(m.records) {
		return m.records[:limit], nil
	}
	return m.records, nil
}

// shortBatchEmbedder returns fewer embeddings than texts.
type shortBatchEmbedder struct {
	mockEmbeddingService
}

func (m *shortBatchEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	result, err := m.mockEmbeddingService.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, err
	}
	return result[:len(result)-1], nil
}

func sampleRecords() []domain.RecipeRecord {
	return []domain.RecipeRecord{
		{
			Title:       "Carbonara",
			Ingredients: `['spaghetti', 'eggs', 'pancetta']`,
			Directions:  `['Boil pasta.', 'Mix eggs and cheese.']`,
			Link:        "example.com/carbonara",
			Source:      "Gathered",
		},
		{
			Title:       "Menemen",
			Ingredients: `['eggs', 'tomatoes', 'peppers']`,
			Directions:  `['Cook vegetables.', 'Add eggs.']`,
		},
		{
			Title:       "Lemonade",
			Ingredients: `['lemons', 'sugar', 'water']`,
			Directions:  `['Squeeze lemons.', 'Mix and chill.']`,
		},
	}
}

func newTestIndexer(source driven.RecipeSource, embed driven.EmbeddingService, maxRecipes int) (*IndexerService, *memory.Index) {
	index := memory.New()
	factory := func(_ int) (driven.VectorIndex, error) {
		return index, nil
	}
	return NewIndexerService(source, recipe.New(), embed, factory, maxRecipes), index
}

func TestIndexerService_Build(t *testing.T) {
	source := &mockRecipeSource{records: sampleRecords()}
	svc, index := newTestIndexer(source, &mockEmbeddingService{}, 0)

	summary, err := svc.Build(context.Background())

	require.NoError(t, err)
	assert.Equal(t, driving.BuildSummary{Records: 3, Documents: 3}, summary)

	count, err := index.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestIndexerService_Build_StoresNormalisedContent(t *testing.T) {
	source := &mockRecipeSource{records: sampleRecords()[:1]}
	svc, index := newTestIndexer(source, &mockEmbeddingService{}, 0)

	_, err := svc.Build(context.Background())
	require.NoError(t, err)

	results, err := index.Search(context.Background(), []float32{1, 0}, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t,
		"Title: Carbonara\nIngredients: spaghetti, eggs, pancetta\nDirections: Boil pasta. Mix eggs and cheese.",
		results[0].Document.Content)
	assert.Equal(t, "Carbonara", results[0].Document.Metadata[domain.MetadataTitle])
}

func TestIndexerService_Build_RespectsLimit(t *testing.T) {
	source := &mockRecipeSource{records: sampleRecords()}
	svc, index := newTestIndexer(source, &mockEmbeddingService{}, 2)

	summary, err := svc.Build(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, source.gotLimit)
	assert.Equal(t, 2, summary.Documents)

	count, err := index.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestIndexerService_Build_EmptyCorpus(t *testing.T) {
	source := &mockRecipeSource{}
	factoryCalls := 0
	factory := func(_ int) (driven.VectorIndex, error) {
		factoryCalls++
		return memory.New(), nil
	}
	svc := NewIndexerService(source, recipe.New(), &mockEmbeddingService{}, factory, 0)

	_, err := svc.Build(context.Background())

	assert.ErrorIs(t, err, domain.ErrEmptyCorpus)

	// Nothing was created.
	assert.Zero(t, factoryCalls)
}

func TestIndexerService_Build_SourceFailure(t *testing.T) {
	source := &mockRecipeSource{loadErr: errors.New("no such file")}
	svc, _ := newTestIndexer(source, &mockEmbeddingService{}, 0)

	_, err := svc.Build(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "load dataset")
}

func TestIndexerService_Build_EmbeddingFailure(t *testing.T) {
	source := &mockRecipeSource{records: sampleRecords()}
	embed := &mockEmbeddingService{embedErr: errors.New("service down")}
	factoryCalls := 0
	factory := func(_ int) (driven.VectorIndex, error) {
		factoryCalls++
		return memory.New(), nil
	}
	svc := NewIndexerService(source, recipe.New(), embed, factory, 0)

	_, err := svc.Build(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "embed corpus")
	assert.Zero(t, factoryCalls)
}

func TestIndexerService_Build_EmbeddingCountMismatch(t *testing.T) {
	source := &mockRecipeSource{records: sampleRecords()}
	svc, _ := newTestIndexer(source, &shortBatchEmbedder{}, 0)

	_, err := svc.Build(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "embedding count mismatch")
}

func TestIndexerService_Build_FactoryFailure(t *testing.T) {
	source := &mockRecipeSource{records: sampleRecords()}
	factory := func(_ int) (driven.VectorIndex, error) {
		return nil, errors.New("disk full")
	}
	svc := NewIndexerService(source, recipe.New(), &mockEmbeddingService{}, factory, 0)

	_, err := svc.Build(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "create index")
}
