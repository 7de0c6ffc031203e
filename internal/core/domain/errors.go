package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyCorpus indicates an index build was attempted with zero
	// documents. Building from nothing is rejected, never silently
	// accepted.
	ErrEmptyCorpus = errors.New("no documents to index")

	// ErrIndexNotFound indicates no persisted index exists at the
	// configured path. The online path treats this as a fatal startup
	// condition.
	ErrIndexNotFound = errors.New("vector index not found")

	// ErrIndexCorrupt indicates the persisted index could not be read
	// back or its recorded dimension does not match the embedding model.
	ErrIndexCorrupt = errors.New("vector index unreadable or incompatible")

	// ErrLLMUnavailable indicates the language model service is not
	// configured or unreachable. Both query expansion and answer
	// generation require it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured or unreachable. Indexing and retrieval require it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)
