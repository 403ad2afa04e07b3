package classifier

import (
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/janmitra/janmitra/internal/interfaces"
	"github.com/janmitra/janmitra/internal/models"
)

// Floors applied after scoring
const (
	unmatchedConfidence  = 0.3  // No pattern matched anywhere
	outOfScopeConfidence = 0.85 // Ambiguity never suppresses the safety boundary
)

// Service classifies queries with weighted bilingual patterns. Classification
// is a pure function of the query text; no provider call is involved.
type Service struct {
	logger arbor.ILogger
}

// NewService creates a new classifier service
func NewService(logger arbor.ILogger) *Service {
	return &Service{logger: logger}
}

// Classify assigns the query to the highest-scoring category. Ties resolve to
// the category declared first; a query matching nothing is general_faq at low
// confidence.
func (s *Service) Classify(query string) *models.ClassificationResult {
	best := &models.ClassificationResult{
		Category:   models.CategoryGeneralFAQ,
		Confidence: unmatchedConfidence,
	}

	bestScore, totalScore := 0.0, 0.0
	for _, def := range categoryDefs {
		score := 0.0
		subIntent := ""
		for _, pat := range def.patterns {
			if pat.re.MatchString(query) {
				score += pat.weight
				if subIntent == "" {
					subIntent = pat.subIntent
				}
			}
		}
		totalScore += score
		if score > bestScore {
			bestScore = score
			best.Category = def.category
			best.SubIntent = subIntent
		}
	}

	if bestScore > 0 {
		best.Confidence = bestScore / totalScore
	}
	if best.Category == models.CategoryOutOfScope && best.Confidence < outOfScopeConfidence {
		best.Confidence = outOfScopeConfidence
	}

	best.ExtractedParams = extractParams(query)

	s.logger.Debug().
		Str("category", string(best.Category)).
		Float64("confidence", best.Confidence).
		Str("sub_intent", best.SubIntent).
		Msg("Classified query")

	return best
}

// extractParams pulls structured identifiers out of the query text
func extractParams(query string) map[string]string {
	params := map[string]string{}

	if epic := epicPattern.FindString(strings.ToUpper(query)); epic != "" {
		params["epic_number"] = epic
	}
	if booth := boothPattern.FindStringSubmatch(query); booth != nil {
		params["booth_number"] = booth[1]
	}
	// Booth numbers are matched first so a booth digit run is not mistaken
	// for a PIN code
	if pin := pinPattern.FindString(query); pin != "" && params["booth_number"] != pin {
		params["pincode"] = pin
	}

	if len(params) == 0 {
		return nil
	}
	return params
}

// Ensure Service implements the classifier interface
var _ interfaces.ClassifierService = (*Service)(nil)
