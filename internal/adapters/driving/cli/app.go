package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/tarifbot/tarifbot/internal/adapters/driven/ai"
	"github.com/tarifbot/tarifbot/internal/adapters/driven/config/file"
	"github.com/tarifbot/tarifbot/internal/adapters/driven/vector/sqlite"
	"github.com/tarifbot/tarifbot/internal/core/ports/driven"
	"github.com/tarifbot/tarifbot/internal/core/ports/driving"
	"github.com/tarifbot/tarifbot/internal/core/services"
	"github.com/tarifbot/tarifbot/internal/logger"
)

// Injected services for tests. When nil, commands wire real adapters
// from configuration.
var (
	askService     driving.AskService
	indexerService driving.Indexer
)

// buildAskService wires the full answering pipeline from configuration.
// The returned cleanup closes every opened adapter.
func buildAskService(_ context.Context) (driving.AskService, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	prompts, err := newPromptStore()
	if err != nil {
		return nil, nil, err
	}

	llm, err := newLLMService(cfg, prompts)
	if err != nil {
		return nil, nil, err
	}

	embed, err := newEmbeddingService(cfg)
	if err != nil {
		llm.Close()
		return nil, nil, err
	}

	index, err := openIndex(cfg, embed)
	if err != nil {
		embed.Close()
		llm.Close()
		return nil, nil, err
	}

	svc := services.NewAskService(llm, embed, index, services.AskConfig{
		ExpandCount: cfg.Ask.ExpandCount,
		SearchK:     cfg.Ask.SearchK,
		Temperature: cfg.Ask.Temperature,
	})
	svc.SetPromptStore(prompts)

	cleanup := func() {
		index.Close()
		embed.Close()
		llm.Close()
	}
	return svc, cleanup, nil
}

// loadConfig reads the configuration from the --config directory.
func loadConfig() (file.Config, error) {
	return file.LoadConfig(configDir)
}

// newPromptStore creates the file-based prompt store next to the config.
func newPromptStore() (driven.PromptStore, error) {
	if configDir == "" {
		return file.NewPromptStore("")
	}
	return file.NewPromptStore(filepath.Join(configDir, "prompts"))
}

// newLLMService builds the configured LLM adapter and verifies it is
// reachable before any request is made.
func newLLMService(cfg file.Config, prompts driven.PromptStore) (driven.LLMService, error) {
	logger.Debug("Creating LLM service (provider=%s)", cfg.LLM.Provider)
	svc, err := ai.CreateAndValidateLLMService(ai.LLMSettings{
		Provider: cfg.LLM.Provider,
		Model:    cfg.LLM.Model,
		BaseURL:  cfg.LLM.BaseURL,
		APIKey:   cfg.LLM.APIKey(),
	})
	if err != nil {
		return nil, err
	}

	if aware, ok := svc.(driven.PromptStoreAware); ok && prompts != nil {
		aware.SetPromptStore(prompts)
	}
	return svc, nil
}

// newEmbeddingService builds the configured embedding adapter and
// verifies it is reachable.
func newEmbeddingService(cfg file.Config) (driven.EmbeddingService, error) {
	logger.Debug("Creating embedding service (provider=%s)", cfg.Embedding.Provider)
	return ai.CreateAndValidateEmbeddingService(ai.EmbeddingSettings{
		Provider:   cfg.Embedding.Provider,
		Model:      cfg.Embedding.Model,
		BaseURL:    cfg.Embedding.BaseURL,
		APIKey:     cfg.Embedding.APIKey(),
		Dimensions: cfg.Embedding.Dimensions,
	})
}

// openIndex opens the vector index and checks it matches the configured
// embedding model, so a model switch cannot silently degrade retrieval.
func openIndex(cfg file.Config, embed driven.EmbeddingService) (*sqlite.Index, error) {
	index, err := sqlite.Open(cfg.Index.Path)
	if err != nil {
		return nil, err
	}

	dims, err := index.Dimensions(context.Background())
	if err != nil {
		index.Close()
		return nil, err
	}
	if dims != embed.Dimensions() {
		index.Close()
		return nil, fmt.Errorf(
			"index at %s was built with %d dimensions, embedding model %s produces %d; rebuild with 'tarifbot index'",
			cfg.Index.Path, dims, embed.ModelName(), embed.Dimensions())
	}
	if model := index.Model(); model != "" && model != embed.ModelName() {
		index.Close()
		return nil, fmt.Errorf(
			"index at %s was built with embedding model %s, configured model is %s; rebuild with 'tarifbot index'",
			cfg.Index.Path, model, embed.ModelName())
	}

	return index, nil
}
