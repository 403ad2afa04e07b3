package generation

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/ternarybob/arbor"

	"github.com/janmitra/janmitra/internal/common"
	"github.com/janmitra/janmitra/internal/interfaces"
	"github.com/janmitra/janmitra/internal/models"
	"github.com/janmitra/janmitra/internal/resilience"
)

// Confidence heuristic bounds
const (
	baseConfidence      = 0.85
	shortConfidence     = 0.5  // Answers under minAnswerChars
	truncatedConfidence = 0.65 // Cap when the completion hit the token limit
	minAnswerChars      = 50
)

// promptTokensPerWord is the token-count estimate per whitespace-split word
const promptTokensPerWord = 1.3

// selfReportedTag matches the model's explicit confidence tag, e.g.
// "[confidence: 0.82]".
var selfReportedTag = regexp.MustCompile(`(?i)\[confidence:\s*(0(?:\.\d+)?|1(?:\.0+)?)\]`)

// Service produces the final grounded answer. Provider failures never surface
// to the caller; the deterministic template fallback always yields an answer.
type Service struct {
	provider  interfaces.InferenceService
	res       *resilience.Client
	sanitizer interfaces.ResponseSanitizer
	cfg       *common.GenerationConfig
	logger    arbor.ILogger
}

// NewService creates a new generation service
func NewService(provider interfaces.InferenceService, res *resilience.Client, sanitizer interfaces.ResponseSanitizer, cfg *common.GenerationConfig, logger arbor.ILogger) *Service {
	return &Service{
		provider:  provider,
		res:       res,
		sanitizer: sanitizer,
		cfg:       cfg,
		logger:    logger,
	}
}

// Generate calls the provider, cleans the output and scores it
func (s *Service) Generate(ctx context.Context, systemPrompt, userPrompt, locale string) (*models.GenerationResult, error) {
	if !s.provider.Configured(interfaces.OpChat) {
		s.logger.Warn().Msg("Chat provider not configured, answering from template")
		return s.Fallback(userPrompt, locale), nil
	}

	prompt := s.trimToContext(userPrompt)

	resp, err := resilience.Do(ctx, s.res, "chat", func(ctx context.Context) (*interfaces.ChatResponse, error) {
		return s.provider.Chat(ctx, &interfaces.ChatRequest{
			System:      systemPrompt,
			Messages:    []models.Message{{Role: "user", Content: prompt}},
			MaxTokens:   s.cfg.MaxGenerationTokens,
			Temperature: s.cfg.Temperature,
		})
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("Generation failed, answering from template")
		return s.Fallback(userPrompt, locale), nil
	}

	text := s.sanitizer.Sanitize(resp.Text)
	if text == "" {
		s.logger.Warn().
			Int("raw_length", len(resp.Text)).
			Msg("Sanitizer rejected the whole completion, answering from template")
		return s.Fallback(userPrompt, locale), nil
	}

	result := &models.GenerationResult{
		PromptTokens:     resp.PromptTokens,
		CompletionTokens: resp.CompletionTokens,
		ModelID:          resp.Model,
		Truncated:        resp.Truncated,
	}
	result.Text = s.extractSelfReported(text, result)
	result.Confidence = heuristicConfidence(result)

	s.logger.Debug().
		Str("model", result.ModelID).
		Int("completion_tokens", result.CompletionTokens).
		Float64("confidence", result.Confidence).
		Bool("truncated", result.Truncated).
		Msg("Generated answer")

	return result, nil
}

// trimToContext cuts the user prompt so its token estimate plus the
// completion budget fit the model's context window. The question sits at the
// end of the prompt, so leading grounding context is dropped first.
func (s *Service) trimToContext(userPrompt string) string {
	window := s.cfg.MaxContextTokens - s.cfg.MaxGenerationTokens
	if window <= 0 {
		return userPrompt
	}

	maxWords := int(float64(window) / promptTokensPerWord)
	trimmed := keepLastWords(userPrompt, maxWords)
	if len(trimmed) < len(userPrompt) {
		s.logger.Warn().
			Int("context_window", window).
			Int("max_words", maxWords).
			Int("dropped_bytes", len(userPrompt)-len(trimmed)).
			Msg("User prompt trimmed to fit the context window")
	}
	return trimmed
}

// keepLastWords returns the suffix of text holding at most maxWords
// whitespace-split words, preserving internal formatting.
func keepLastWords(text string, maxWords int) string {
	if maxWords <= 0 {
		return ""
	}

	var starts []int
	inWord := false
	for i, r := range text {
		if unicode.IsSpace(r) {
			inWord = false
			continue
		}
		if !inWord {
			inWord = true
			starts = append(starts, i)
		}
	}
	if len(starts) <= maxWords {
		return text
	}
	return strings.TrimSpace(text[starts[len(starts)-maxWords]:])
}

// Fallback returns the keyword-matched deterministic template response
func (s *Service) Fallback(query, locale string) *models.GenerationResult {
	tmpl := matchTemplate(query)
	return &models.GenerationResult{
		Text:         tmpl.text(locale),
		Confidence:   tmpl.confidence,
		FromTemplate: true,
	}
}

// extractSelfReported parses and strips the confidence tag, recording it on
// the result.
func (s *Service) extractSelfReported(text string, result *models.GenerationResult) string {
	match := selfReportedTag.FindStringSubmatch(text)
	if match == nil {
		return text
	}
	if value, err := strconv.ParseFloat(match[1], 64); err == nil {
		result.SelfReported = value
		result.HasSelfReported = true
	}
	return strings.TrimSpace(selfReportedTag.ReplaceAllString(text, ""))
}

// heuristicConfidence scores answer quality from observable signals only
func heuristicConfidence(result *models.GenerationResult) float64 {
	confidence := baseConfidence
	if len(result.Text) < minAnswerChars {
		confidence = shortConfidence
	}
	if result.Truncated && confidence > truncatedConfidence {
		confidence = truncatedConfidence
	}
	return confidence
}

// Ensure Service implements the generation interface
var _ interfaces.GenerationService = (*Service)(nil)
