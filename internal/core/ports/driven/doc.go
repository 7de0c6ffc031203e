// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - EmbeddingService: Generates vector embeddings. Used identically by
//     the offline build and the online query path.
//   - LLMService: Language model operations. Required for query expansion
//     and answer generation; a failure here is a request failure, never
//     a silent degradation.
//   - VectorIndex: Stores document embeddings and answers nearest-neighbour
//     queries. Built once offline, read-only online.
//
// # Optional Interfaces
//
//   - PromptStore: Custom prompt templates. When absent, hardcoded
//     defaults are used.
package driven
