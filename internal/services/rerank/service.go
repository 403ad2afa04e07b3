package rerank

import (
	"context"
	"sort"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/janmitra/janmitra/internal/interfaces"
	"github.com/janmitra/janmitra/internal/models"
	"github.com/janmitra/janmitra/internal/resilience"
)

// Service rescores retrieval candidates with the hosted cross-encoder.
// Reranking is strictly best-effort: any provider failure, an unconfigured
// endpoint, or an empty score set degrades to retrieval order with the
// retrieval score reused, and never fails the pipeline.
type Service struct {
	provider interfaces.InferenceService
	res      *resilience.Client
	cache    *resilience.TTLCache
	logger   arbor.ILogger
}

// NewService creates a new rerank service
func NewService(provider interfaces.InferenceService, res *resilience.Client, cache *resilience.TTLCache, logger arbor.ILogger) *Service {
	return &Service{
		provider: provider,
		res:      res,
		cache:    cache,
		logger:   logger,
	}
}

// Rerank returns the topK candidates by cross-encoder score
func (s *Service) Rerank(ctx context.Context, query string, passages []*models.Passage, topK int) ([]*models.RerankResult, error) {
	if len(passages) == 0 {
		return nil, nil
	}
	if topK <= 0 || topK > len(passages) {
		topK = len(passages)
	}

	if !s.provider.Configured(interfaces.OpRerank) {
		s.logger.Debug().Msg("Reranker not configured, keeping retrieval order")
		return s.passthrough(passages, topK), nil
	}

	key := cacheKey(query, passages)
	if cached, ok := s.cache.Get(key); ok {
		if byID, ok := cached.(map[string]float64); ok {
			if scores, ok := scoresFor(passages, byID); ok {
				return s.ranked(passages, scores, topK), nil
			}
		}
	}

	documents := make([]string, len(passages))
	for i, p := range passages {
		documents[i] = p.Content
	}

	scores, err := resilience.Do(ctx, s.res, "rerank", func(ctx context.Context) ([]float64, error) {
		return s.provider.Rerank(ctx, query, documents)
	})
	if err != nil || len(scores) != len(passages) {
		s.logger.Warn().
			Err(err).
			Int("scores", len(scores)).
			Int("candidates", len(passages)).
			Msg("Reranking unavailable, keeping retrieval order")
		return s.passthrough(passages, topK), nil
	}

	// Cache by passage ID so a reordered candidate set still hits
	byID := make(map[string]float64, len(passages))
	for i, p := range passages {
		byID[p.ID] = scores[i]
	}
	s.cache.Set(key, byID)

	return s.ranked(passages, scores, topK), nil
}

// scoresFor maps cached per-ID scores back onto the current candidate order
func scoresFor(passages []*models.Passage, byID map[string]float64) ([]float64, bool) {
	scores := make([]float64, len(passages))
	for i, p := range passages {
		score, ok := byID[p.ID]
		if !ok {
			return nil, false
		}
		scores[i] = score
	}
	return scores, true
}

// ranked sorts by cross-encoder score, stable so ties keep retrieval order
func (s *Service) ranked(passages []*models.Passage, scores []float64, topK int) []*models.RerankResult {
	results := make([]*models.RerankResult, len(passages))
	for i, p := range passages {
		results[i] = &models.RerankResult{
			Passage:       p,
			RerankerScore: scores[i],
			OriginalRank:  i,
		}
	}
	sort.SliceStable(results, func(a, b int) bool {
		return results[a].RerankerScore > results[b].RerankerScore
	})
	return results[:topK]
}

// passthrough keeps retrieval order, reusing the retrieval score
func (s *Service) passthrough(passages []*models.Passage, topK int) []*models.RerankResult {
	results := make([]*models.RerankResult, 0, topK)
	for i, p := range passages[:topK] {
		results = append(results, &models.RerankResult{
			Passage:       p,
			RerankerScore: p.Score,
			OriginalRank:  i,
		})
	}
	return results
}

// cacheKey combines the query with the candidate IDs in sorted order, so the
// same candidate set reuses cached scores regardless of retrieval ordering
// jitter.
func cacheKey(query string, passages []*models.Passage) string {
	ids := make([]string, len(passages))
	for i, p := range passages {
		ids[i] = p.ID
	}
	sort.Strings(ids)

	var b strings.Builder
	b.WriteString(strings.ToLower(strings.TrimSpace(query)))
	for _, id := range ids {
		b.WriteString("|")
		b.WriteString(id)
	}
	return b.String()
}

// Ensure Service implements the rerank interface
var _ interfaces.RerankService = (*Service)(nil)
