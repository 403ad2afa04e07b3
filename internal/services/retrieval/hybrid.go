package retrieval

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/janmitra/janmitra/internal/common"
	"github.com/janmitra/janmitra/internal/interfaces"
	"github.com/janmitra/janmitra/internal/models"
	"github.com/janmitra/janmitra/internal/services/kb"
)

// Service scores the passage collection with hybrid lexical plus vector
// fusion. When embeddings are unavailable (warm-up pending, provider down, or
// partial coverage) it degrades to lexical-only scoring rather than failing.
type Service struct {
	collection *kb.Collection
	embedder   interfaces.EmbeddingService
	index      *bm25Index
	cfg        *common.RetrievalConfig
	logger     arbor.ILogger
}

// NewService creates the retrieval service and builds the lexical index
func NewService(collection *kb.Collection, embedder interfaces.EmbeddingService, cfg *common.RetrievalConfig, logger arbor.ILogger) *Service {
	return &Service{
		collection: collection,
		embedder:   embedder,
		index:      newBM25Index(collection.Passages()),
		cfg:        cfg,
		logger:     logger,
	}
}

// Retrieve returns the top candidates by hybrid score, greedily cut to the
// token budget. The returned passages are scored copies; the collection is
// never mutated.
func (s *Service) Retrieve(ctx context.Context, query string, tokenBudget int) (*models.RetrievalResult, error) {
	if query == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}
	if tokenBudget <= 0 {
		tokenBudget = s.cfg.TokenBudget
	}
	passages := s.collection.Passages()
	if len(passages) == 0 {
		return nil, fmt.Errorf("passage collection is empty")
	}

	lexStart := time.Now()
	lexical := normalize(s.index.scoreAll(query))
	lexicalMs := time.Since(lexStart).Milliseconds()

	vector, vectorMs := s.vectorScores(ctx, query)

	method := models.MethodBM25
	fused := lexical
	if vector != nil {
		method = models.MethodHybrid
		fused = make([]float64, len(passages))
		for i := range passages {
			fused[i] = s.cfg.VectorWeight*vector[i] + s.cfg.LexicalWeight*lexical[i]
		}
	}

	order := make([]int, len(passages))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return fused[order[a]] > fused[order[b]]
	})
	if len(order) > s.cfg.MaxCandidates {
		order = order[:s.cfg.MaxCandidates]
	}

	// Greedy budget cut: stop at the first passage that would overflow the
	// caller's budget, so the estimate never exceeds it
	result := &models.RetrievalResult{
		VectorUsed: vector != nil,
		LexicalMs:  lexicalMs,
		VectorMs:   vectorMs,
	}
	for _, i := range order {
		cost := estimateTokens(passages[i].Content)
		if result.TokenEstimate+cost > tokenBudget {
			break
		}
		result.Passages = append(result.Passages, passages[i].WithScore(fused[i], method))
		result.TokenEstimate += cost
	}

	s.logger.Debug().
		Str("method", string(method)).
		Int("candidates", len(result.Passages)).
		Int("token_estimate", result.TokenEstimate).
		Int64("lexical_ms", lexicalMs).
		Int64("vector_ms", vectorMs).
		Msg("Retrieval complete")

	return result, nil
}

// vectorScores returns per-passage cosine similarities, or nil when vector
// scoring is unavailable and fusion must be skipped.
func (s *Service) vectorScores(ctx context.Context, query string) ([]float64, int64) {
	warmupWait := time.Duration(s.cfg.WarmupWaitMillis) * time.Millisecond
	if !s.collection.WaitReady(warmupWait) {
		s.logger.Debug().Msg("Embedding warm-up still running, scoring lexical-only")
		return nil, 0
	}
	if !s.collection.VectorsComplete() {
		return nil, 0
	}

	start := time.Now()
	queryVec, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Query embedding failed, scoring lexical-only")
		return nil, time.Since(start).Milliseconds()
	}

	scores := make([]float64, s.collection.Size())
	for i := range scores {
		scores[i] = cosineSimilarity(queryVec, s.collection.Vector(i).Values)
	}
	return scores, time.Since(start).Milliseconds()
}

// cosineSimilarity clamps negatives to zero so fused scores stay in [0,1]
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if sim < 0 {
		return 0
	}
	return sim
}

// Ensure Service implements the retrieval interface
var _ interfaces.RetrievalService = (*Service)(nil)
