package recipe

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarifbot/tarifbot/internal/core/domain"
)

func TestNormalise_FullRecord(t *testing.T) {
	n := New()
	doc := n.Normalise(domain.RecipeRecord{
		Title:       "Spaghetti Carbonara",
		Ingredients: `['Spaghetti','Egg','Parmesan']`,
		Directions:  `['Boil pasta','Mix sauce']`,
	})

	assert.Equal(t,
		"Title: Spaghetti Carbonara\nIngredients: Spaghetti, Egg, Parmesan\nDirections: Boil pasta Mix sauce",
		doc.Content)
	assert.Equal(t, "recipe_nlg", doc.Metadata[domain.MetadataSource])
	assert.Equal(t, "Spaghetti Carbonara", doc.Metadata[domain.MetadataTitle])
	assert.NotEmpty(t, doc.ID)
}

func TestNormalise_MissingTitle(t *testing.T) {
	n := New()
	doc := n.Normalise(domain.RecipeRecord{
		Ingredients: `["salt"]`,
		Directions:  `["season"]`,
	})

	assert.Equal(t, "Title: No Title\nIngredients: salt\nDirections: season", doc.Content)
	assert.Equal(t, "No Title", doc.Metadata[domain.MetadataTitle])
}

func TestNormalise_MalformedLists(t *testing.T) {
	tests := []struct {
		name        string
		ingredients string
		directions  string
	}{
		{"unterminated string", `['flour`, `['mix`},
		{"not a list", `flour, sugar`, `mix well`},
		{"unquoted items", `[flour, sugar]`, `[mix]`},
		{"missing comma", `['a' 'b']`, `['x' 'y']`},
	}

	n := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := n.Normalise(domain.RecipeRecord{
				Title:       "Broken",
				Ingredients: tt.ingredients,
				Directions:  tt.directions,
			})
			assert.Equal(t, "Title: Broken\nIngredients: None\nDirections: None", doc.Content)
		})
	}
}

func TestNormalise_EmptyLists(t *testing.T) {
	n := New()
	for _, raw := range []string{"", "[]", "  [ ]  "} {
		doc := n.Normalise(domain.RecipeRecord{Title: "Plain", Ingredients: raw, Directions: raw})
		assert.Equal(t, "Title: Plain\nIngredients: None\nDirections: None", doc.Content, "input %q", raw)
	}
}

func TestNormalise_Deterministic(t *testing.T) {
	n := New()
	record := domain.RecipeRecord{
		Title:       "Menemen",
		Ingredients: `['Eggs', 'Tomatoes', 'Peppers']`,
		Directions:  `['Chop vegetables', 'Cook with eggs']`,
	}

	first := n.Normalise(record)
	second := n.Normalise(record)
	assert.Equal(t, first.Content, second.Content)
	assert.Equal(t, first.Metadata, second.Metadata)
}

func TestNormaliseBatch_OrderAndCount(t *testing.T) {
	records := make([]domain.RecipeRecord, 10)
	for i := range records {
		records[i] = domain.RecipeRecord{Title: fmt.Sprintf("Recipe %d", i)}
	}

	n := New()
	docs := n.NormaliseBatch(records, 4)

	require.Len(t, docs, 4)
	for i, doc := range docs {
		assert.Equal(t, fmt.Sprintf("Recipe %d", i), doc.Metadata[domain.MetadataTitle])
	}
}

func TestNormaliseBatch_LimitBeyondInput(t *testing.T) {
	records := []domain.RecipeRecord{{Title: "Only"}}

	n := New()
	docs := n.NormaliseBatch(records, 100)
	require.Len(t, docs, 1)

	docs = n.NormaliseBatch(records, 0)
	require.Len(t, docs, 1)

	docs = n.NormaliseBatch(nil, 5)
	assert.Empty(t, docs)
}

func TestParseListLiteral(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{"double quotes", `["a", "b"]`, []string{"a", "b"}, false},
		{"single quotes", `['a', 'b']`, []string{"a", "b"}, false},
		{"no spaces", `['a','b']`, []string{"a", "b"}, false},
		{"single item", `["1 c. sugar"]`, []string{"1 c. sugar"}, false},
		{"trailing comma", `['a',]`, []string{"a"}, false},
		{"escaped quote", `['it\'s hot']`, []string{"it's hot"}, false},
		{"embedded other quote", `["it's hot"]`, []string{"it's hot"}, false},
		{"empty", ``, nil, false},
		{"empty list", `[]`, nil, false},
		{"bare text", `sugar`, nil, true},
		{"unterminated", `['sugar`, nil, true},
		{"unquoted item", `[sugar]`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseListLiteral(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
