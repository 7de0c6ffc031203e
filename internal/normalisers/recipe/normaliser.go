// Package recipe converts raw recipe records into canonical documents.
package recipe

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tarifbot/tarifbot/internal/core/domain"
	"github.com/tarifbot/tarifbot/internal/core/ports/driven"
	"github.com/tarifbot/tarifbot/internal/logger"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Placeholders used when a record field is missing or unparseable.
const (
	noTitle       = "No Title"
	noIngredients = "None"
	noDirections  = "None"
)

// corpusSource is the metadata source value for the recipe dataset.
const corpusSource = "recipe_nlg"

// Normaliser builds Documents from RecipeRecords. It is stateless.
type Normaliser struct{}

// New creates a new recipe normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Normalise converts one record into its canonical document. The content is
// deterministic for a given record: three labelled sections with fixed
// separators. Malformed ingredient or direction lists degrade to the "None"
// placeholder rather than failing.
func (n *Normaliser) Normalise(record domain.RecipeRecord) domain.Document {
	title := record.Title
	if strings.TrimSpace(title) == "" {
		title = noTitle
	}

	ingredients, err := parseListLiteral(record.Ingredients)
	if err != nil {
		logger.Warn("unparseable ingredients for %q: %v", title, err)
		ingredients = nil
	}
	directions, err := parseListLiteral(record.Directions)
	if err != nil {
		logger.Warn("unparseable directions for %q: %v", title, err)
		directions = nil
	}

	ingredientsText := noIngredients
	if len(ingredients) > 0 {
		ingredientsText = strings.Join(ingredients, ", ")
	}
	directionsText := noDirections
	if len(directions) > 0 {
		directionsText = strings.Join(directions, " ")
	}

	content := fmt.Sprintf("Title: %s\nIngredients: %s\nDirections: %s",
		title, ingredientsText, directionsText)

	return domain.Document{
		ID:      uuid.New().String(),
		Content: content,
		Metadata: map[string]string{
			domain.MetadataSource: corpusSource,
			domain.MetadataTitle:  title,
		},
	}
}

// NormaliseBatch processes the first limit records in order. The result has
// exactly one document per processed record, in input order.
func (n *Normaliser) NormaliseBatch(records []domain.RecipeRecord, limit int) []domain.Document {
	if limit <= 0 || limit > len(records) {
		limit = len(records)
	}

	docs := make([]domain.Document, 0, limit)
	for _, record := range records[:limit] {
		docs = append(docs, n.Normalise(record))
	}
	return docs
}
