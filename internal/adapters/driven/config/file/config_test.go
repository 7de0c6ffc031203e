package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadConfig(dir)

	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, "GOOGLE_API_KEY", cfg.LLM.APIKeyEnv)
	assert.Equal(t, ProviderOllama, cfg.Embedding.Provider)
	assert.Equal(t, DefaultDimensions, cfg.Embedding.Dimensions)
	assert.Equal(t, filepath.Join(dir, "index.db"), cfg.Index.Path)
	assert.Equal(t, DefaultMaxRecipes, cfg.Dataset.MaxRecipes)
	assert.Equal(t, DefaultExpandCount, cfg.Ask.ExpandCount)
	assert.Equal(t, DefaultSearchK, cfg.Ask.SearchK)
	assert.InDelta(t, DefaultTemperature, cfg.Ask.Temperature, 1e-9)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	content := `
[llm]
provider = "ollama"
model = "llama3.2"

[dataset]
path = "/data/recipes.csv"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	cfg, err := LoadConfig(dir)

	require.NoError(t, err)
	assert.Equal(t, ProviderOllama, cfg.LLM.Provider)
	assert.Equal(t, "llama3.2", cfg.LLM.Model)
	assert.Equal(t, "/data/recipes.csv", cfg.Dataset.Path)

	// Unset sections fall back to defaults
	assert.Equal(t, ProviderOllama, cfg.Embedding.Provider)
	assert.Equal(t, DefaultSearchK, cfg.Ask.SearchK)
	assert.Equal(t, DefaultMaxRecipes, cfg.Dataset.MaxRecipes)
}

func TestLoadConfig_FullOverride(t *testing.T) {
	dir := t.TempDir()
	content := `
[llm]
provider = "openai"
model = "gpt-4o-mini"
api_key_env = "OPENAI_API_KEY"

[embedding]
provider = "openai"
model = "text-embedding-3-small"
api_key_env = "OPENAI_API_KEY"
dimensions = 1536

[index]
path = "/var/lib/tarifbot/index.db"

[dataset]
path = "/data/recipes.csv"
max_recipes = 500

[ask]
expand_count = 3
search_k = 5
temperature = 0.2
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	cfg, err := LoadConfig(dir)

	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, 1536, cfg.Embedding.Dimensions)
	assert.Equal(t, "/var/lib/tarifbot/index.db", cfg.Index.Path)
	assert.Equal(t, 500, cfg.Dataset.MaxRecipes)
	assert.Equal(t, 3, cfg.Ask.ExpandCount)
	assert.Equal(t, 5, cfg.Ask.SearchK)
	assert.InDelta(t, 0.2, cfg.Ask.Temperature, 1e-9)
}

func TestLoadConfig_NegativeMaxRecipesMeansNoLimit(t *testing.T) {
	dir := t.TempDir()
	content := `
[dataset]
max_recipes = -1
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	cfg, err := LoadConfig(dir)

	require.NoError(t, err)
	assert.Equal(t, -1, cfg.Dataset.MaxRecipes)
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not = [valid"), 0600))

	_, err := LoadConfig(dir)

	assert.Error(t, err)
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig(dir)
	cfg.LLM.Model = "gemini-2.0-flash"
	cfg.Dataset.Path = "/data/recipes.csv"

	require.NoError(t, SaveConfig(dir, cfg))

	loaded, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSaveConfig_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "config")

	require.NoError(t, SaveConfig(dir, DefaultConfig(dir)))

	_, err := os.Stat(filepath.Join(dir, "config.toml"))
	assert.NoError(t, err)
}

func TestAPIKey_ReadsEnvironment(t *testing.T) {
	t.Setenv("TARIFBOT_TEST_KEY", "secret")

	cfg := LLMConfig{APIKeyEnv: "TARIFBOT_TEST_KEY"}
	assert.Equal(t, "secret", cfg.APIKey())

	empty := LLMConfig{}
	assert.Empty(t, empty.APIKey())
}
