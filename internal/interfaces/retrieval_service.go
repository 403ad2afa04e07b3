package interfaces

import (
	"context"

	"github.com/janmitra/janmitra/internal/models"
)

// RetrievalService scores the fixed in-memory passage collection against a
// query and returns the top candidates within a token budget.
type RetrievalService interface {
	// Retrieve returns at most 15 passages ordered by hybrid score, greedily
	// cut so the running token estimate stays under tokenBudget.
	Retrieve(ctx context.Context, query string, tokenBudget int) (*models.RetrievalResult, error)
}

// RerankService rescores retrieval candidates with a cross-encoder.
type RerankService interface {
	// Rerank returns the topK candidates by cross-encoder score. On provider
	// failure it degrades to the first topK passages in retrieval order with
	// the retrieval score reused as the rerank score; it never fails the
	// pipeline.
	Rerank(ctx context.Context, query string, passages []*models.Passage, topK int) ([]*models.RerankResult, error)
}
