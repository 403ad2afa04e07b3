package confidence

import (
	"context"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/janmitra/janmitra/internal/common"
	"github.com/janmitra/janmitra/internal/interfaces"
	"github.com/janmitra/janmitra/internal/models"
)

// Component weights of the composite score
const (
	retrievalWeight    = 0.20
	rerankWeight       = 0.40
	selfReportedWeight = 0.20
	validationWeight   = 0.20
)

// Validation penalties
const (
	shortAnswerPenalty  = 0.3 // Under minAnswerChars
	noCitationPenalty   = 0.2
	noCompletionPenalty = 0.2 // Provider reported zero completion tokens
	minAnswerChars      = 50
)

// Inputs are the observable signals feeding the composite score
type Inputs struct {
	MaxRetrievalSim float64
	MeanRerank      float64
	Generation      *models.GenerationResult
	HasCitation     bool
}

// Scorer combines retrieval, rerank, self-reported and validation signals
// into one confidence value and decides whether the interaction escalates to
// human review.
type Scorer struct {
	cfg    *common.ConfidenceConfig
	store  interfaces.EscalationStore // nil disables persistence
	logger arbor.ILogger
}

// NewScorer creates a confidence scorer
func NewScorer(cfg *common.ConfidenceConfig, store interfaces.EscalationStore, logger arbor.ILogger) *Scorer {
	return &Scorer{
		cfg:    cfg,
		store:  store,
		logger: logger,
	}
}

// Score computes the composite confidence in [0,1]. When the model emitted no
// confidence tag, the generation heuristic stands in for the self-reported
// component.
func (s *Scorer) Score(in Inputs) float64 {
	selfReported := in.Generation.Confidence
	if in.Generation.HasSelfReported {
		selfReported = in.Generation.SelfReported
	}

	score := retrievalWeight*in.MaxRetrievalSim +
		rerankWeight*in.MeanRerank +
		selfReportedWeight*selfReported +
		validationWeight*s.validate(in)

	return clamp01(score)
}

// validate scores answer plausibility from structural signals only
func (s *Scorer) validate(in Inputs) float64 {
	score := 1.0
	if len(in.Generation.Text) < minAnswerChars {
		score -= shortAnswerPenalty
	}
	if !in.HasCitation {
		score -= noCitationPenalty
	}
	if in.Generation.CompletionTokens == 0 && !in.Generation.FromTemplate {
		score -= noCompletionPenalty
	}
	if score < 0 {
		return 0
	}
	return score
}

// Decide determines whether the interaction escalates and records it when it
// does. A store failure is logged, never propagated; escalation still reaches
// the caller through the returned flag.
func (s *Scorer) Decide(ctx context.Context, out *models.RAGOutput, query, locale string, category models.Category, userID string) {
	switch {
	case out.Safety != nil && out.Safety.Flagged:
		out.Escalate = true
		out.EscalationReason = "safety_flagged"
	case out.Confidence < s.cfg.EscalationThreshold:
		out.Escalate = true
		out.EscalationReason = "low_confidence"
	default:
		return
	}

	s.logger.Info().
		Str("reason", out.EscalationReason).
		Float64("confidence", out.Confidence).
		Msg("Interaction escalated for human review")

	if s.store == nil {
		return
	}

	rec := &models.EscalationRecord{
		ID:         common.NewEscalationID(),
		CreatedAt:  time.Now().UTC(),
		Query:      query,
		Locale:     locale,
		Category:   category,
		Confidence: out.Confidence,
		Reason:     out.EscalationReason,
		UserID:     userID,
	}
	if out.Safety != nil {
		rec.SafetyFlagged = out.Safety.Flagged
		rec.SafetyRule = out.Safety.Rule
	}

	if err := s.store.Record(ctx, rec); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to persist escalation record")
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
