package interfaces

import (
	"context"

	"github.com/janmitra/janmitra/internal/models"
)

// RouterService is the top-level dispatcher exposed to the API layer.
type RouterService interface {
	// RouteInput detects the input modality, transcribes or extracts as
	// needed, and dispatches to a deterministic engine, a structured lookup,
	// or the full retrieval-augmented pipeline.
	RouteInput(ctx context.Context, input *models.RouteInput) (*models.RouterResult, error)
}

// RAGOrchestrator runs the retrieval → rerank → generate → confidence →
// safety pipeline for a text query without modality detection.
type RAGOrchestrator interface {
	Orchestrate(ctx context.Context, input *models.RAGInput) (*models.RAGOutput, error)
}
