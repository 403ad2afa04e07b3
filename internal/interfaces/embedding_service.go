package interfaces

import (
	"context"

	"github.com/janmitra/janmitra/internal/models"
)

// EmbeddingService turns text into dense vectors, caching per-text results.
type EmbeddingService interface {
	// EmbedQuery returns the embedding for a single query text. The cache key
	// is the lower-cased trimmed text; within the TTL window a repeated call
	// issues no provider request.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)

	// EmbedDocuments embeds texts in provider-sized batches. A failed batch
	// leaves its vectors absent rather than failing the whole call; callers
	// must tolerate partial results.
	EmbedDocuments(ctx context.Context, texts []string) ([]models.Vector, error)
}
