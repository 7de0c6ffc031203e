package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Provider names accepted in the llm and embedding sections.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

// Config is the full tarifbot configuration, stored as TOML in the
// config directory (~/.tarifbot/config.toml by default).
type Config struct {
	LLM       LLMConfig       `toml:"llm"`
	Embedding EmbeddingConfig `toml:"embedding"`
	Index     IndexConfig     `toml:"index"`
	Dataset   DatasetConfig   `toml:"dataset"`
	Ask       AskConfig       `toml:"ask"`
}

// LLMConfig selects and configures the answer/expansion model.
type LLMConfig struct {
	// Provider is one of gemini, openai, ollama.
	Provider string `toml:"provider"`

	// Model overrides the provider's default model.
	Model string `toml:"model"`

	// BaseURL overrides the provider's default endpoint.
	BaseURL string `toml:"base_url"`

	// APIKeyEnv names the environment variable holding the API key.
	APIKeyEnv string `toml:"api_key_env"`
}

// EmbeddingConfig selects and configures the embedding model.
type EmbeddingConfig struct {
	// Provider is one of ollama, openai.
	Provider string `toml:"provider"`

	// Model overrides the provider's default model.
	Model string `toml:"model"`

	// BaseURL overrides the provider's default endpoint.
	BaseURL string `toml:"base_url"`

	// APIKeyEnv names the environment variable holding the API key.
	APIKeyEnv string `toml:"api_key_env"`

	// Dimensions is the embedding vector size the index is built with.
	Dimensions int `toml:"dimensions"`
}

// IndexConfig locates the vector index on disk.
type IndexConfig struct {
	Path string `toml:"path"`
}

// DatasetConfig locates the recipe CSV and caps how much of it is indexed.
type DatasetConfig struct {
	Path string `toml:"path"`

	// MaxRecipes limits how many rows are indexed. Zero or negative
	// means no limit.
	MaxRecipes int `toml:"max_recipes"`
}

// AskConfig tunes the question answering pipeline.
type AskConfig struct {
	// ExpandCount is how many alternative queries to generate per question.
	ExpandCount int `toml:"expand_count"`

	// SearchK is how many documents each query retrieves.
	SearchK int `toml:"search_k"`

	// Temperature is the sampling temperature for answer generation.
	Temperature float64 `toml:"temperature"`
}

// Default pipeline settings.
const (
	DefaultMaxRecipes  = 10000
	DefaultExpandCount = 4
	DefaultSearchK     = 15
	DefaultTemperature = 0.7
	DefaultDimensions  = 768
)

// DefaultConfigDir returns the tarifbot config directory (~/.tarifbot).
func DefaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".tarifbot"), nil
}

// DefaultConfig returns a configuration with all defaults applied.
// The index path is relative to configDir.
func DefaultConfig(configDir string) Config {
	return Config{
		LLM: LLMConfig{
			Provider:  ProviderGemini,
			APIKeyEnv: "GOOGLE_API_KEY",
		},
		Embedding: EmbeddingConfig{
			Provider:   ProviderOllama,
			Dimensions: DefaultDimensions,
		},
		Index: IndexConfig{
			Path: filepath.Join(configDir, "index.db"),
		},
		Dataset: DatasetConfig{
			MaxRecipes: DefaultMaxRecipes,
		},
		Ask: AskConfig{
			ExpandCount: DefaultExpandCount,
			SearchK:     DefaultSearchK,
			Temperature: DefaultTemperature,
		},
	}
}

// LoadConfig reads the TOML config file from configDir, applying defaults
// for any missing values. A missing file yields the full default config.
// If configDir is empty, the default config directory is used.
func LoadConfig(configDir string) (Config, error) {
	if configDir == "" {
		dir, err := DefaultConfigDir()
		if err != nil {
			return Config{}, err
		}
		configDir = dir
	}

	cfg := DefaultConfig(configDir)

	data, err := os.ReadFile(filepath.Join(configDir, "config.toml"))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	applyDefaults(&cfg, configDir)
	return cfg, nil
}

// SaveConfig writes the configuration to configDir/config.toml,
// creating the directory if needed.
func SaveConfig(configDir string, cfg Config) error {
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(filepath.Join(configDir, "config.toml"), data, 0600)
}

// applyDefaults fills zero values left by a partial config file.
func applyDefaults(cfg *Config, configDir string) {
	def := DefaultConfig(configDir)

	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = def.LLM.Provider
	}
	if cfg.LLM.APIKeyEnv == "" && cfg.LLM.Provider == ProviderGemini {
		cfg.LLM.APIKeyEnv = def.LLM.APIKeyEnv
	}
	if cfg.Embedding.Provider == "" {
		cfg.Embedding.Provider = def.Embedding.Provider
	}
	if cfg.Embedding.Dimensions <= 0 {
		cfg.Embedding.Dimensions = def.Embedding.Dimensions
	}
	if cfg.Index.Path == "" {
		cfg.Index.Path = def.Index.Path
	}
	if cfg.Dataset.MaxRecipes == 0 {
		cfg.Dataset.MaxRecipes = def.Dataset.MaxRecipes
	}
	if cfg.Ask.ExpandCount <= 0 {
		cfg.Ask.ExpandCount = def.Ask.ExpandCount
	}
	if cfg.Ask.SearchK <= 0 {
		cfg.Ask.SearchK = def.Ask.SearchK
	}
	if cfg.Ask.Temperature <= 0 {
		cfg.Ask.Temperature = def.Ask.Temperature
	}
}

// APIKey resolves the LLM API key from the configured environment variable.
func (c LLMConfig) APIKey() string {
	if c.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.APIKeyEnv)
}

// APIKey resolves the embedding API key from the configured environment variable.
func (c EmbeddingConfig) APIKey() string {
	if c.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.APIKeyEnv)
}
