package embeddings

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ternarybob/arbor"

	"github.com/janmitra/janmitra/internal/interfaces"
	"github.com/janmitra/janmitra/internal/models"
	"github.com/janmitra/janmitra/internal/resilience"
)

// batchSize is the provider's embedding batch limit
const batchSize = 64

// Service turns text into dense vectors through the resilience client,
// caching per-text results for the configured TTL (24h by default).
type Service struct {
	provider interfaces.InferenceService
	res      *resilience.Client
	cache    *resilience.TTLCache
	logger   arbor.ILogger
}

// NewService creates a new embedding service
func NewService(provider interfaces.InferenceService, res *resilience.Client, cache *resilience.TTLCache, logger arbor.ILogger) *Service {
	return &Service{
		provider: provider,
		res:      res,
		cache:    cache,
		logger:   logger,
	}
}

// EmbedQuery returns the embedding for a single query text. The cache key is
// the lower-cased trimmed text, so a repeated query within the TTL window
// issues no provider call.
func (s *Service) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	key := strings.ToLower(strings.TrimSpace(text))
	if cached, ok := s.cache.Get(key); ok {
		if vec, ok := cached.([]float32); ok {
			return vec, nil
		}
	}

	vectors, err := resilience.Do(ctx, s.res, "embedding", func(ctx context.Context) ([][]float32, error) {
		return s.provider.Embed(ctx, []string{text})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate query embedding: %w", err)
	}
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return nil, fmt.Errorf("provider returned empty embedding")
	}

	s.cache.Set(key, vectors[0])
	s.logger.Debug().
		Int("embedding_dim", len(vectors[0])).
		Msg("Generated query embedding")

	return vectors[0], nil
}

// EmbedDocuments embeds texts in batches of 64, issuing the batches
// concurrently and joining before returning. A failed batch is logged and its
// vectors left absent rather than failing the whole call; callers must
// tolerate partial results.
func (s *Service) EmbedDocuments(ctx context.Context, texts []string) ([]models.Vector, error) {
	results := make([]models.Vector, len(texts))
	if len(texts) == 0 {
		return results, nil
	}

	var wg sync.WaitGroup
	for start := 0; start < len(texts); start += batchSize {
		end := start + batchSize
		if end > len(texts) {
			end = len(texts)
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()

			batch := texts[start:end]
			vectors, err := resilience.Do(ctx, s.res, "embedding", func(ctx context.Context) ([][]float32, error) {
				return s.provider.Embed(ctx, batch)
			})
			if err != nil {
				s.logger.Warn().
					Err(err).
					Int("batch_start", start).
					Int("batch_size", len(batch)).
					Msg("Embedding batch failed, leaving vectors absent")
				return
			}

			for i, vec := range vectors {
				if len(vec) > 0 {
					results[start+i] = models.SomeVector(vec)
				}
			}
		}(start, end)
	}
	wg.Wait()

	embedded := 0
	for _, v := range results {
		if v.Valid {
			embedded++
		}
	}
	s.logger.Debug().
		Int("requested", len(texts)).
		Int("embedded", embedded).
		Msg("Embedded document batch")

	return results, nil
}

// Ensure Service implements the embedding interface
var _ interfaces.EmbeddingService = (*Service)(nil)
