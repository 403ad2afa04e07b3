package interfaces

import "github.com/janmitra/janmitra/internal/models"

// SafetyService enforces political neutrality, detects out-of-scope and
// adversarial inputs, and redacts PII.
type SafetyService interface {
	// Check runs the ordered rule set over the user query and the candidate
	// response. The first matching rule short-circuits the rest and supplies
	// a fixed neutral substitute response.
	Check(candidateText, userQuery, locale string) *models.SafetyResult

	// Redact masks national-ID, tax-ID, phone and email patterns with fixed
	// placeholder tokens, reporting whether anything was masked.
	Redact(text string) (string, bool)
}
