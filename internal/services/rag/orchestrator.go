package rag

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/janmitra/janmitra/internal/common"
	"github.com/janmitra/janmitra/internal/interfaces"
	"github.com/janmitra/janmitra/internal/models"
	"github.com/janmitra/janmitra/internal/resilience"
	"github.com/janmitra/janmitra/internal/services/confidence"
)

// maxSources caps the citations attached to an answer
const maxSources = 3

// Orchestrator runs the full answer pipeline: retrieve, rerank, generate,
// score, safety-filter. Every stage degrades rather than fails, so the
// pipeline always produces an answer; uncertainty is expressed through the
// confidence score and the escalation flag instead of errors.
type Orchestrator struct {
	retrieval  interfaces.RetrievalService
	reranker   interfaces.RerankService
	generator  interfaces.GenerationService
	classifier interfaces.ClassifierService
	safety     interfaces.SafetyService
	scorer     *confidence.Scorer
	answers    *resilience.TTLCache
	cfg        *common.Config
	logger     arbor.ILogger
}

// NewOrchestrator wires the pipeline stages
func NewOrchestrator(
	retrieval interfaces.RetrievalService,
	reranker interfaces.RerankService,
	generator interfaces.GenerationService,
	classifier interfaces.ClassifierService,
	safety interfaces.SafetyService,
	scorer *confidence.Scorer,
	answers *resilience.TTLCache,
	cfg *common.Config,
	logger arbor.ILogger,
) *Orchestrator {
	return &Orchestrator{
		retrieval:  retrieval,
		reranker:   reranker,
		generator:  generator,
		classifier: classifier,
		safety:     safety,
		scorer:     scorer,
		answers:    answers,
		cfg:        cfg,
		logger:     logger,
	}
}

// Orchestrate answers a text query through the full pipeline
func (o *Orchestrator) Orchestrate(ctx context.Context, input *models.RAGInput) (*models.RAGOutput, error) {
	if strings.TrimSpace(input.Query) == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}
	requestID := common.NewRequestID()
	locale := input.Locale
	if locale == "" {
		locale = "en"
	}

	cacheKey := locale + "|" + strings.ToLower(strings.TrimSpace(input.Query))
	if cached, ok := o.answers.Get(cacheKey); ok {
		if out, ok := cached.(*models.RAGOutput); ok {
			copied := *out
			copied.RequestID = requestID
			o.logger.Debug().Str("request_id", requestID).Msg("Answer served from cache")
			return &copied, nil
		}
	}

	out := &models.RAGOutput{RequestID: requestID}

	// Retrieval
	retrieveStart := time.Now()
	retrieved, err := o.retrieval.Retrieve(ctx, input.Query, input.TokenBudget)
	if err != nil {
		return nil, fmt.Errorf("retrieval failed: %w", err)
	}
	out.RetrievalMs = time.Since(retrieveStart).Milliseconds()

	// Reranking, best-effort by contract
	rerankStart := time.Now()
	reranked, err := o.reranker.Rerank(ctx, input.Query, retrieved.Passages, o.cfg.Rerank.TopK)
	if err != nil {
		return nil, fmt.Errorf("rerank failed: %w", err)
	}
	out.RerankMs = time.Since(rerankStart).Milliseconds()

	out.Sources = citations(reranked)
	out.RetrievalTrace = trace(reranked)

	// Generation
	generateStart := time.Now()
	generated, err := o.generator.Generate(ctx, systemPrompt(locale), userPrompt(input, reranked), locale)
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}
	out.GenerationMs = time.Since(generateStart).Milliseconds()
	out.PromptTokens = generated.PromptTokens
	out.CompletionTokens = generated.CompletionTokens

	text, _ := o.safety.Redact(generated.Text)
	out.Text = text

	// Confidence
	out.Confidence = o.scorer.Score(confidence.Inputs{
		MaxRetrievalSim: retrieved.MaxSimilarity(),
		MeanRerank:      meanRerank(reranked),
		Generation:      generated,
		HasCitation:     len(out.Sources) > 0,
	})

	// Safety filter over the exchange; a flagged result substitutes the
	// neutral response and drops sources that no longer back the text
	out.Safety = o.safety.Check(out.Text, input.Query, locale)
	if out.Safety.Flagged {
		out.Text = out.Safety.Response
		out.Sources = nil
		out.RetrievalTrace = nil
	}

	redactedQuery, _ := o.safety.Redact(input.Query)
	category := o.classifier.Classify(input.Query).Category
	o.scorer.Decide(ctx, out, redactedQuery, locale, category, input.UserID)

	if !out.Escalate {
		o.answers.Set(cacheKey, out)
	}

	o.logger.Info().
		Str("request_id", requestID).
		Float64("confidence", out.Confidence).
		Bool("escalate", out.Escalate).
		Int64("retrieval_ms", out.RetrievalMs).
		Int64("generation_ms", out.GenerationMs).
		Msg("Answer pipeline complete")

	return out, nil
}

// citations derives up to three distinct source references from the top
// reranked passages.
func citations(reranked []*models.RerankResult) []models.Citation {
	var sources []models.Citation
	seen := map[string]bool{}
	for _, r := range reranked {
		meta := r.Passage.Metadata
		if meta.Source == "" {
			continue
		}
		key := meta.Source + "|" + meta.URL
		if seen[key] {
			continue
		}
		seen[key] = true
		sources = append(sources, models.Citation{Title: meta.Source, URL: meta.URL})
		if len(sources) == maxSources {
			break
		}
	}
	return sources
}

func trace(reranked []*models.RerankResult) []models.TraceEntry {
	entries := make([]models.TraceEntry, 0, len(reranked))
	for _, r := range reranked {
		entries = append(entries, models.TraceEntry{
			DocID:         r.Passage.ID,
			Similarity:    r.Passage.Score,
			RerankerScore: r.RerankerScore,
		})
	}
	return entries
}

func meanRerank(reranked []*models.RerankResult) float64 {
	if len(reranked) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range reranked {
		sum += r.RerankerScore
	}
	return sum / float64(len(reranked))
}

func systemPrompt(locale string) string {
	language := "English"
	if locale == "hi" {
		language = "Hindi"
	}
	return "You are Janmitra, a neutral election services assistant for Indian voters. " +
		"Answer only from the provided context passages. Cite the source title of any passage you use. " +
		"Never express opinions about parties, candidates or election outcomes. " +
		"If the context does not cover the question, say so and point to the 1950 voter helpline. " +
		"Respond in " + language + ". " +
		"End your answer with a confidence tag in the form [confidence: 0.NN]."
}

func userPrompt(input *models.RAGInput, reranked []*models.RerankResult) string {
	var b strings.Builder
	b.WriteString("Context passages:\n\n")
	for i, r := range reranked {
		fmt.Fprintf(&b, "[%d] %s (%s)\n%s\n\n", i+1, r.Passage.Metadata.Source, r.Passage.Metadata.URL, r.Passage.Content)
	}

	if len(input.ConversationHistory) > 0 {
		b.WriteString("Conversation so far:\n")
		for _, m := range input.ConversationHistory {
			fmt.Fprintf(&b, "%s: %s\n", m.Role, m.Content)
		}
		b.WriteString("\n")
	}

	b.WriteString("Question: ")
	b.WriteString(input.Query)
	return b.String()
}

// Ensure Orchestrator implements the orchestration interface
var _ interfaces.RAGOrchestrator = (*Orchestrator)(nil)
