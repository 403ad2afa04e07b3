package interfaces

import (
	"context"

	"github.com/janmitra/janmitra/internal/models"
)

// GenerationService produces the final grounded answer text.
type GenerationService interface {
	// Generate calls the inference provider with the given prompts, cleans
	// reasoning leakage from the output and applies the confidence heuristic.
	// When the provider is unconfigured or every retry fails it returns the
	// deterministic template fallback; it never returns an error to the
	// caller alongside no answer.
	Generate(ctx context.Context, systemPrompt, userPrompt, locale string) (*models.GenerationResult, error)

	// Fallback returns the keyword-matched deterministic template response
	// for a query without touching the provider.
	Fallback(query, locale string) *models.GenerationResult
}

// ResponseSanitizer strips internal reasoning leakage from raw model output.
// It is a pluggable strategy so alternate model families can supply their own
// stripping rule without touching the pipeline.
type ResponseSanitizer interface {
	// Sanitize returns the cleaned answer text. An empty result means every
	// paragraph looked like reasoning and the caller must fall back.
	Sanitize(raw string) string
}
