package usecase

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/avant-atelier/backend/internal/domain"
)

// Package-level compiled regex patterns for performance
var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)

	priceIntentRegex = regexp.MustCompile(`(?i)price|cost|how much|\$|usd|vnd`)
	topNIntentRegex  = regexp.MustCompile(`(?i)top\s*\d+|recommend|suggest`)
)

const chatSystemPrompt = "You are an assistant for an online fashion store (Avant Atelier). " +
	"Answer only using the context from our catalog below. If unknown, say you do not have " +
	"that information and suggest contacting support. Keep answers concise."

// ChatServiceConfig holds configuration for the chat service
type ChatServiceConfig struct {
	ContextSize int
	CacheTTL    time.Duration
}

// ChatService answers storefront questions: it grounds each message in the
// catalog via the chat scorer, forwards the prompt to the generative API,
// and degrades to a locally formatted answer when generation is
// unavailable. No failure here is ever surfaced as a fatal error.
type ChatService struct {
	catalog     *CatalogService
	scorer      *ChatScorer
	client      domain.GenerativeClient
	cache       domain.CacheRepository
	contextSize int
	cacheTTL    time.Duration
}

// NewChatService creates a chat service with dependencies. client may be
// nil when no API key is configured; the service then answers locally.
func NewChatService(
	catalog *CatalogService,
	client domain.GenerativeClient,
	cache domain.CacheRepository,
	config ChatServiceConfig,
) *ChatService {
	contextSize := config.ContextSize
	if contextSize <= 0 {
		contextSize = 12
	}

	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 15 * time.Minute
	}

	return &ChatService{
		catalog: catalog,
		// Chat grounding searches the extended haystack: colors, sizes
		// and status matter for availability questions.
		scorer:      NewChatScorer(FieldsExtended),
		client:      client,
		cache:       cache,
		contextSize: contextSize,
		cacheTTL:    cacheTTL,
	}
}

// Ask answers one message. k caps the number of context records; zero
// means the configured default.
// Flow: check cache -> rank catalog -> build context -> generate -> cache
func (s *ChatService) Ask(ctx context.Context, message string, k int) (*domain.ChatReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, domain.ErrInvalidRequest
	}

	if k <= 0 {
		k = s.contextSize
	}

	cacheKey := s.generateCacheKey(message, k)
	if cached := s.getFromCache(ctx, cacheKey); cached != nil {
		reply := *cached
		reply.Source = "cache"
		return &reply, nil
	}

	catalog := s.catalog.Load(ctx)
	hits := s.scorer.TopMatches(message, catalog, k)

	used := make([]domain.UsedItem, 0, len(hits))
	for _, hit := range hits {
		used = append(used, domain.UsedItem{ID: hit.ID, Name: hit.Name, Category: hit.Category})
	}

	reply := &domain.ChatReply{Used: used, Source: "gemini"}

	text, err := s.generate(ctx, message, hits)
	if err != nil {
		log.Printf("[CHAT] Generation unavailable, answering locally: %v", err)
		text = localAnswer(message, hits)
		reply.Source = "local"
	}
	reply.Text = text

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, reply, s.cacheTTL); err != nil {
			log.Printf("[CHAT] WARNING: could not cache reply: %v", err)
		}
	}

	return reply, nil
}

// generate builds the grounded prompt and calls the generative API
func (s *ChatService) generate(ctx context.Context, message string, hits []domain.ProductRecord) (string, error) {
	if s.client == nil {
		return "", domain.ErrNotConfigured
	}

	contextBlock := FormatContext(hits)
	prompt := fmt.Sprintf("%s\n\nContext:\n---\n%s\n---\n\nUser question:\n%s",
		chatSystemPrompt, contextBlock, message)

	text, err := s.client.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", domain.ErrGenerateFailure
	}
	return text, nil
}

// localAnswer formats the ranked hits directly, with phrasing picked by
// the question's apparent intent.
func localAnswer(message string, hits []domain.ProductRecord) string {
	if len(hits) == 0 {
		return "I couldn't find a matching item in our catalog."
	}

	lines := make([]string, 0, len(hits))
	for i, hit := range hits {
		lines = append(lines, fmt.Sprintf("%d. %s — %s [%s]", i+1, hit.Name, renderPrice(hit.Price), hit.Category))
	}
	listing := strings.Join(lines, "\n")

	switch {
	case priceIntentRegex.MatchString(message):
		return "Here are the closest matches with prices:\n" + listing
	case topNIntentRegex.MatchString(message):
		return "You might like these:\n" + listing
	default:
		return "Here are items related to your query:\n" + listing
	}
}

// generateCacheKey creates a normalized cache key from the message.
// Format: "chat:{normalized_message}:{k}"
func (s *ChatService) generateCacheKey(message string, k int) string {
	return fmt.Sprintf("chat:%s:%d", normalizeForCacheKey(message), k)
}

// normalizeForCacheKey normalizes a string for use as cache key component.
// Converts to lowercase, removes special characters, and trims whitespace.
func normalizeForCacheKey(s string) string {
	if s == "" {
		return ""
	}
	result := strings.ToLower(s)
	result = nonAlphanumericRegex.ReplaceAllString(result, "")
	result = multipleSpacesRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

// getFromCache retrieves a cached reply, tolerating misses silently
func (s *ChatService) getFromCache(ctx context.Context, key string) *domain.ChatReply {
	if s.cache == nil {
		return nil
	}

	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil
	}

	reply, ok := value.(*domain.ChatReply)
	if !ok {
		return nil
	}
	return reply
}
