package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarifbot/tarifbot/internal/core/domain"
)

func doc(id string) domain.Document {
	return domain.Document{ID: id, Content: id, Metadata: map[string]string{"title": id}}
}

func TestAddAndSearch(t *testing.T) {
	idx := New()
	ctx := context.Background()

	require.NoError(t, idx.Add(ctx, doc("a"), []float32{1, 0}))
	require.NoError(t, idx.Add(ctx, doc("b"), []float32{0, 1}))

	results, err := idx.Search(ctx, []float32{1, 0}, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "a", results[0].Document.ID)

	count, err := idx.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestAdd_DimensionMismatch(t *testing.T) {
	idx := New()
	ctx := context.Background()

	require.NoError(t, idx.Add(ctx, doc("a"), []float32{1, 0}))
	err := idx.Add(ctx, doc("b"), []float32{1, 0, 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSearch_DimensionMismatch(t *testing.T) {
	idx := New()
	ctx := context.Background()

	require.NoError(t, idx.Add(ctx, doc("a"), []float32{1, 0}))

	_, err := idx.Search(ctx, []float32{1, 0, 0}, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = idx.Search(ctx, []float32{1}, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSearch_StableTies(t *testing.T) {
	idx := New()
	ctx := context.Background()

	require.NoError(t, idx.Add(ctx, doc("first"), []float32{1, 1}))
	require.NoError(t, idx.Add(ctx, doc("second"), []float32{1, 1}))

	results, err := idx.Search(ctx, []float32{1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "first", results[0].Document.ID)
	assert.Equal(t, "second", results[1].Document.ID)
}

func TestSearch_EmptyIndex(t *testing.T) {
	idx := New()

	results, err := idx.Search(context.Background(), []float32{1}, 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}
