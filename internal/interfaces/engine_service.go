package interfaces

import (
	"context"

	"github.com/janmitra/janmitra/internal/models"
)

// EngineService is the deterministic civic-content engine collaborator.
// Given a classified category it formats a canned multi-paragraph response
// from static datasets without calling any model. The router treats it as a
// synchronous pure function.
type EngineService interface {
	// Respond returns the formatted engine response for the category, or
	// (nil, false) when no engine serves the category.
	Respond(ctx context.Context, category models.Category, subIntent, query, locale string) (*models.EngineResult, bool)
}
