package domain

// MetadataSource is the metadata key holding the corpus a document came from.
const MetadataSource = "source"

// MetadataTitle is the metadata key holding the recipe title.
const MetadataTitle = "title"

// RecipeRecord is a raw row from the recipe dataset before normalisation.
// Ingredients and Directions carry the serialised list syntax of the source
// file and may be malformed or empty.
type RecipeRecord struct {
	// Title is the recipe name. May be empty.
	Title string

	// Ingredients is a serialised list of ingredient strings,
	// e.g. `["flour", "sugar"]`.
	Ingredients string

	// Directions is a serialised list of preparation steps.
	Directions string

	// Link is the original recipe URL. Not used for retrieval.
	Link string

	// Source identifies the sub-corpus the row was gathered from.
	Source string

	// NER is the serialised named-entity list shipped with the dataset.
	// Not used for retrieval.
	NER string
}

// Document is the canonical retrieval unit. It is created once by the
// normaliser and never mutated afterwards.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Content is the full text used for embedding and grounding.
	// It always contains the three labelled sections Title,
	// Ingredients and Directions.
	Content string

	// Metadata contains at least the "source" and "title" keys.
	Metadata map[string]string
}

// SearchResult pairs a retrieved document with its similarity score.
type SearchResult struct {
	// Document is the matched document.
	Document Document

	// Similarity is the cosine similarity to the query (0-1).
	Similarity float64
}
