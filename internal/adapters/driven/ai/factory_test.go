package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarifbot/tarifbot/internal/core/domain"
)

func TestCreateLLMService_Ollama(t *testing.T) {
	svc, err := CreateLLMService(LLMSettings{Provider: ProviderOllama})

	require.NoError(t, err)
	require.NotNil(t, svc)
	assert.Equal(t, "llama3.2", svc.ModelName())
	svc.Close()
}

func TestCreateLLMService_OllamaCustomModel(t *testing.T) {
	svc, err := CreateLLMService(LLMSettings{Provider: ProviderOllama, Model: "mistral"})

	require.NoError(t, err)
	assert.Equal(t, "mistral", svc.ModelName())
	svc.Close()
}

func TestCreateLLMService_Gemini(t *testing.T) {
	svc, err := CreateLLMService(LLMSettings{Provider: ProviderGemini, APIKey: "test-key"})

	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-flash", svc.ModelName())
	svc.Close()
}

func TestCreateLLMService_GeminiRequiresAPIKey(t *testing.T) {
	_, err := CreateLLMService(LLMSettings{Provider: ProviderGemini})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestCreateLLMService_OpenAI(t *testing.T) {
	svc, err := CreateLLMService(LLMSettings{Provider: ProviderOpenAI, APIKey: "test-key"})

	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", svc.ModelName())
	svc.Close()
}

func TestCreateLLMService_OpenAIRequiresAPIKey(t *testing.T) {
	_, err := CreateLLMService(LLMSettings{Provider: ProviderOpenAI})

	assert.Error(t, err)
}

func TestCreateLLMService_UnknownProvider(t *testing.T) {
	_, err := CreateLLMService(LLMSettings{Provider: "anthropic"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown llm provider")
}

func TestCreateEmbeddingService_Ollama(t *testing.T) {
	svc, err := CreateEmbeddingService(EmbeddingSettings{Provider: ProviderOllama})

	require.NoError(t, err)
	assert.Equal(t, "nomic-embed-text", svc.ModelName())
	assert.Equal(t, 768, svc.Dimensions())
	svc.Close()
}

func TestCreateEmbeddingService_OpenAI(t *testing.T) {
	svc, err := CreateEmbeddingService(EmbeddingSettings{Provider: ProviderOpenAI, APIKey: "test-key"})

	require.NoError(t, err)
	assert.Equal(t, "text-embedding-3-small", svc.ModelName())
	svc.Close()
}

func TestCreateEmbeddingService_UnknownProvider(t *testing.T) {
	_, err := CreateEmbeddingService(EmbeddingSettings{Provider: "huggingface"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown embedding provider")
}

func TestCreateAndValidateLLMService_CreationErrorWrapsUnavailable(t *testing.T) {
	_, err := CreateAndValidateLLMService(LLMSettings{Provider: "bogus"})

	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
}

func TestCreateAndValidateEmbeddingService_CreationErrorWrapsUnavailable(t *testing.T) {
	_, err := CreateAndValidateEmbeddingService(EmbeddingSettings{Provider: "bogus"})

	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
}
