package rag

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/janmitra/janmitra/internal/common"
	"github.com/janmitra/janmitra/internal/models"
	"github.com/janmitra/janmitra/internal/resilience"
	"github.com/janmitra/janmitra/internal/services/classifier"
	"github.com/janmitra/janmitra/internal/services/confidence"
	"github.com/janmitra/janmitra/internal/services/safety"
)

type fakeRetrieval struct {
	calls int
	sim   float64
}

func (f *fakeRetrieval) Retrieve(ctx context.Context, query string, tokenBudget int) (*models.RetrievalResult, error) {
	f.calls++
	return &models.RetrievalResult{
		Passages: []*models.Passage{
			{
				ID:      "registration",
				Content: "To register as a new voter, fill Form 6 online at voters.eci.gov.in.",
				Score:   f.sim,
				Method:  models.MethodHybrid,
				Metadata: models.PassageMetadata{
					Source: "Voter registration guide",
					URL:    "https://voters.eci.gov.in",
				},
			},
			{
				ID:      "helpline",
				Content: "The national voter helpline 1950 answers registration questions.",
				Score:   f.sim / 2,
				Method:  models.MethodHybrid,
				Metadata: models.PassageMetadata{
					Source: "Helpline",
					URL:    "https://eci.gov.in",
				},
			},
		},
		VectorUsed: true,
	}, nil
}

type fakeRerank struct {
	score float64
}

func (f *fakeRerank) Rerank(ctx context.Context, query string, passages []*models.Passage, topK int) ([]*models.RerankResult, error) {
	if topK > len(passages) {
		topK = len(passages)
	}
	results := make([]*models.RerankResult, 0, topK)
	for i, p := range passages[:topK] {
		results = append(results, &models.RerankResult{Passage: p, RerankerScore: f.score, OriginalRank: i})
	}
	return results, nil
}

type fakeGenerator struct {
	result *models.GenerationResult
}

func (f *fakeGenerator) Generate(ctx context.Context, systemPrompt, userPrompt, locale string) (*models.GenerationResult, error) {
	return f.result, nil
}

func (f *fakeGenerator) Fallback(query, locale string) *models.GenerationResult {
	return &models.GenerationResult{Text: "fallback", Confidence: 0.3, FromTemplate: true}
}

func newOrchestrator(gen *fakeGenerator) (*Orchestrator, *fakeRetrieval) {
	return newOrchestratorWith(gen, 0.82, 0.8)
}

func newOrchestratorWith(gen *fakeGenerator, sim, rerankScore float64) (*Orchestrator, *fakeRetrieval) {
	cfg := common.DefaultConfig()
	retrieval := &fakeRetrieval{sim: sim}
	scorer := confidence.NewScorer(&cfg.Confidence, nil, arbor.NewLogger())
	return NewOrchestrator(
		retrieval,
		&fakeRerank{score: rerankScore},
		gen,
		classifier.NewService(arbor.NewLogger()),
		safety.NewService(arbor.NewLogger()),
		scorer,
		resilience.NewTTLCache(time.Hour),
		cfg,
		arbor.NewLogger(),
	), retrieval
}

func goodAnswer() *models.GenerationResult {
	return &models.GenerationResult{
		Text: "To register as a voter, fill Form 6 online at voters.eci.gov.in (Voter registration guide). " +
			"You must be an Indian citizen and at least 18 years old.",
		Confidence:       0.85,
		SelfReported:     0.8,
		HasSelfReported:  true,
		CompletionTokens: 42,
	}
}

func TestOrchestrate_ConfidentAnswer(t *testing.T) {
	orch, _ := newOrchestrator(&fakeGenerator{result: goodAnswer()})

	out, err := orch.Orchestrate(context.Background(), &models.RAGInput{
		Query:  "How do I register as a voter?",
		Locale: "en",
	})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, out.Confidence, 0.55, "a well-grounded answer must not escalate")
	assert.False(t, out.Escalate)
	assert.Contains(t, out.Text, "Form 6")
	assert.NotEmpty(t, out.RequestID)

	require.Len(t, out.Sources, 2)
	assert.Equal(t, "Voter registration guide", out.Sources[0].Title)

	require.Len(t, out.RetrievalTrace, 2)
	assert.Equal(t, "registration", out.RetrievalTrace[0].DocID)
	assert.Equal(t, 0.82, out.RetrievalTrace[0].Similarity)
	assert.Equal(t, 0.8, out.RetrievalTrace[0].RerankerScore)
}

func TestOrchestrate_PoliticalQuerySubstituted(t *testing.T) {
	orch, _ := newOrchestrator(&fakeGenerator{result: goodAnswer()})

	out, err := orch.Orchestrate(context.Background(), &models.RAGInput{
		Query:  "Which party should I vote for?",
		Locale: "en",
	})
	require.NoError(t, err)

	require.NotNil(t, out.Safety)
	assert.True(t, out.Safety.Flagged)
	assert.Equal(t, models.RulePoliticalQuery, out.Safety.Rule)
	assert.Contains(t, out.Text, "can't advise")
	assert.Empty(t, out.Sources, "substituted text carries no citations")
	assert.True(t, out.Escalate)
	assert.Equal(t, "safety_flagged", out.EscalationReason)
}

func TestOrchestrate_AnswerCache(t *testing.T) {
	orch, retrieval := newOrchestrator(&fakeGenerator{result: goodAnswer()})

	first, err := orch.Orchestrate(context.Background(), &models.RAGInput{Query: "How do I register as a voter?", Locale: "en"})
	require.NoError(t, err)

	second, err := orch.Orchestrate(context.Background(), &models.RAGInput{Query: "  how do i REGISTER as a voter?  ", Locale: "en"})
	require.NoError(t, err)

	assert.Equal(t, 1, retrieval.calls, "second call within TTL must skip the pipeline")
	assert.Equal(t, first.Text, second.Text)
	assert.NotEqual(t, first.RequestID, second.RequestID, "cached answers still get a fresh request ID")
}

func TestOrchestrate_EscalatedAnswerNotCached(t *testing.T) {
	weak := &models.GenerationResult{Text: "Unsure.", Confidence: 0.5, CompletionTokens: 2}
	orch, retrieval := newOrchestratorWith(&fakeGenerator{result: weak}, 0.2, 0.25)

	first, err := orch.Orchestrate(context.Background(), &models.RAGInput{Query: "obscure procedural question", Locale: "en"})
	require.NoError(t, err)
	require.True(t, first.Escalate)

	_, err = orch.Orchestrate(context.Background(), &models.RAGInput{Query: "obscure procedural question", Locale: "en"})
	require.NoError(t, err)
	assert.Equal(t, 2, retrieval.calls, "low-confidence answers are recomputed, not cached")
}

func TestOrchestrate_PIIRedactedFromAnswer(t *testing.T) {
	leaky := goodAnswer()
	leaky.Text = "Your EPIC ABC1234567 is registered. Fill Form 8 to update your address on the electoral roll."
	orch, _ := newOrchestrator(&fakeGenerator{result: leaky})

	out, err := orch.Orchestrate(context.Background(), &models.RAGInput{Query: "Is EPIC ABC1234567 registered?", Locale: "en"})
	require.NoError(t, err)

	assert.Contains(t, out.Text, "[ID-REDACTED]")
	assert.NotContains(t, out.Text, "ABC1234567")
}

func TestOrchestrate_EmptyQuery(t *testing.T) {
	orch, _ := newOrchestrator(&fakeGenerator{result: goodAnswer()})

	_, err := orch.Orchestrate(context.Background(), &models.RAGInput{Query: "   "})
	assert.Error(t, err)
}
