package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/tarifbot/tarifbot/internal/core/domain"
	"github.com/tarifbot/tarifbot/internal/core/ports/driven"
	"github.com/tarifbot/tarifbot/internal/core/ports/driving"
	"github.com/tarifbot/tarifbot/internal/logger"
)

// Ensure AskService implements the interface.
var _ driving.AskService = (*AskService)(nil)

// defaultAnswerPrompt is used when no PromptStore is configured. The
// fallback sentence inside it must stay identical to domain.FallbackAnswer.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
const defaultAnswerPrompt = `Sen, sadece sağlanan tarif bağlamını kullanarak soruları yanıtlayan bir yemek tarifi asistanısın.
Kullanıcının sorusuna en uygun tarifi bulup, tarifi açık ve anlaşılır bir şekilde sun.
Eğer bağlamda tam olarak uygun bir tarif yoksa ancak malzemelerle ilgili benzer tarifler varsa, bu tarifleri sunmaya çalış. Eğer hiçbir ilgili tarif bulunamazsa, "Üzgünüm, bu konuda uygun bir tarif bulamadım. Başka bir şey denemek ister misiniz?" de.
Tarifi sunarken, tüm içeriği (Başlık, Malzemeler ve Talimatlar) Türkçe'ye çevirerek ve bu bölümleri net bir şekilde ayırarak sun.

Bağlam:
%s

Soru:
%s

Cevap:`

// AskConfig tunes the question answering pipeline.
type AskConfig struct {
	// ExpandCount is how many alternative queries to generate per
	// question (default 4).
	ExpandCount int

	// SearchK is how many documents each expanded query retrieves
	// (default 15).
	SearchK int

	// Temperature is the sampling temperature for answer generation
	// (default 0.7).
	Temperature float64
}

// AskService answers questions grounded in the recipe index. Each call
// is independent; the service keeps no conversational state.
type AskService struct {
	llmService       driven.LLMService
	embeddingService driven.EmbeddingService
	vectorIndex      driven.VectorIndex
	promptStore      driven.PromptStore

	expandCount int
	searchK     int
	temperature float64
}

// NewAskService creates a new ask service. Zero config values fall back
// to defaults.
func NewAskService(
	llmService driven.LLMService,
	embeddingService driven.EmbeddingService,
	vectorIndex driven.VectorIndex,
	cfg AskConfig,
) *AskService {
	if cfg.ExpandCount <= 0 {
		cfg.ExpandCount = 4
	}
	if cfg.SearchK <= 0 {
		cfg.SearchK = 15
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.7
	}

	return &AskService{
		llmService:       llmService,
		embeddingService: embeddingService,
		vectorIndex:      vectorIndex,
		expandCount:      cfg.ExpandCount,
		searchK:          cfg.SearchK,
		temperature:      cfg.Temperature,
	}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (s *AskService) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// Ask runs the full pipeline for one question: expand the query,
// retrieve per expanded query, merge, assemble context and generate the
// answer. Any external failure is returned to the caller unretried.
func (s *AskService) Ask(ctx context.Context, question string) (domain.Answer, error) {
	logger.Section("Question Answering")
	logger.Debug("Question: %q", question)

	question = strings.TrimSpace(question)
	if question == "" {
		return domain.Answer{}, fmt.Errorf("%w: empty question", domain.ErrInvalidInput)
	}

	// Expand the question into retrieval queries. The original question
	// is always the first query. Expansion failure fails the request;
	// answering from a single query would silently change retrieval
	// quality.
	queries, err := s.llmService.ExpandQuery(ctx, question, s.expandCount)
	if err != nil {
		logger.Warn("Query expansion failed: %v", err)
		return domain.Answer{}, fmt.Errorf("expand query: %w", err)
	}
	logger.Debug("Expanded to %d queries", len(queries))
	for i, q := range queries {
		logger.Debug("  query[%d]: %q", i, q)
	}

	// Retrieve per query and merge, deduplicating by content. First
	// appearance wins, so documents found by earlier queries keep their
	// position.
	docs, err := s.retrieve(ctx, queries)
	if err != nil {
		return domain.Answer{}, err
	}
	logger.Info("Retrieved %d distinct documents", len(docs))

	contextText := assembleContext(docs)
	if contextText == "" {
		logger.Info("No context retrieved, returning fallback answer")
		return domain.Answer{
			Text:    domain.FallbackAnswer,
			Queries: queries,
		}, nil
	}

	promptTemplate := s.loadPrompt(driven.PromptAnswer, defaultAnswerPrompt)
	prompt := fmt.Sprintf(promptTemplate, contextText, question)

	logger.Debug("Generating answer (context: %d chars)", len(contextText))
	text, err := s.llmService.Generate(ctx, prompt, driven.GenerateOptions{
		Temperature: s.temperature,
	})
	if err != nil {
		logger.Warn("Answer generation failed: %v", err)
		return domain.Answer{}, fmt.Errorf("generate answer: %w", err)
	}

	return domain.Answer{
		Text:      strings.TrimSpace(text),
		Grounded:  true,
		Queries:   queries,
		Retrieved: len(docs),
	}, nil
}

// retrieve embeds each query, searches the index and merges the result
// lists in query order, deduplicating by document content.
func (s *AskService) retrieve(ctx context.Context, queries []string) ([]domain.Document, error) {
	seen := make(map[string]bool)
	var docs []domain.Document

	for _, query := range queries {
		embedding, err := s.embeddingService.Embed(ctx, query)
		if err != nil {
			logger.Warn("Query embedding failed: %v", err)
			return nil, fmt.Errorf("embed query %q: %w", query, err)
		}

		results, err := s.vectorIndex.Search(ctx, embedding, s.searchK)
		if err != nil {
			logger.Warn("Vector search failed: %v", err)
			return nil, fmt.Errorf("search %q: %w", query, err)
		}
		logger.Debug("Query %q: %d hits", query, len(results))

		for _, result := range results {
			if seen[result.Document.Content] {
				continue
			}
			seen[result.Document.Content] = true
			docs = append(docs, result.Document)
		}
	}

	return docs, nil
}

// assembleContext joins document contents with blank lines, preserving
// merge order.
func assembleContext(docs []domain.Document) string {
	contents := make([]string, len(docs))
	for i, doc := range docs {
		contents[i] = doc.Content
	}
	return strings.Join(contents, "\n\n")
}

// loadPrompt loads a prompt from the store, falling back to the default if unavailable.
func (s *AskService) loadPrompt(name, fallback string) string {
	if s.promptStore == nil {
		return fallback
	}
	prompt, err := s.promptStore.Load(name)
	if err != nil {
		return fallback
	}
	return prompt
}
