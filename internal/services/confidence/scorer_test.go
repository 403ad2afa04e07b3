package confidence

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/janmitra/janmitra/internal/common"
	"github.com/janmitra/janmitra/internal/interfaces"
	"github.com/janmitra/janmitra/internal/models"
)

type memStore struct {
	records []*models.EscalationRecord
	err     error
}

func (m *memStore) Record(ctx context.Context, rec *models.EscalationRecord) error {
	if m.err != nil {
		return m.err
	}
	m.records = append(m.records, rec)
	return nil
}

func (m *memStore) List(limit int) ([]*models.EscalationRecord, error) { return m.records, nil }
func (m *memStore) Close() error                                       { return nil }

func newScorer(store *memStore) *Scorer {
	cfg := common.DefaultConfig().Confidence
	var escalations interfaces.EscalationStore
	if store != nil {
		escalations = store
	}
	return NewScorer(&cfg, escalations, arbor.NewLogger())
}

func goodGeneration() *models.GenerationResult {
	return &models.GenerationResult{
		Text:             "To register as a voter, fill Form 6 online at voters.eci.gov.in before the qualifying date.",
		CompletionTokens: 24,
	}
}

func TestScore_StrongSignals(t *testing.T) {
	s := newScorer(nil)

	score := s.Score(Inputs{
		MaxRetrievalSim: 0.9,
		MeanRerank:      0.85,
		Generation:      goodGeneration(),
		HasCitation:     true,
	})

	// 0.2*0.9 + 0.4*0.85 + 0.2*0 + 0.2*1.0 with heuristic confidence 0
	assert.InDelta(t, 0.72, score, 0.001)
	assert.GreaterOrEqual(t, score, 0.55, "strong signals must clear the escalation threshold")
}

func TestScore_SelfReportedOverridesHeuristic(t *testing.T) {
	s := newScorer(nil)

	gen := goodGeneration()
	gen.Confidence = 0.85
	gen.SelfReported = 0.3
	gen.HasSelfReported = true

	withTag := s.Score(Inputs{MaxRetrievalSim: 0.9, MeanRerank: 0.85, Generation: gen, HasCitation: true})

	gen.HasSelfReported = false
	withoutTag := s.Score(Inputs{MaxRetrievalSim: 0.9, MeanRerank: 0.85, Generation: gen, HasCitation: true})

	assert.Less(t, withTag, withoutTag, "an explicit low self-report must pull the score down")
}

func TestScore_ValidationPenalties(t *testing.T) {
	s := newScorer(nil)

	gen := &models.GenerationResult{Text: "Short.", CompletionTokens: 0}
	score := s.Score(Inputs{MaxRetrievalSim: 0.5, MeanRerank: 0.5, Generation: gen, HasCitation: false})

	// Validation: 1.0 - 0.3 - 0.2 - 0.2 = 0.3
	assert.InDelta(t, 0.2*0.5+0.4*0.5+0.2*0+0.2*0.3, score, 0.001)
}

func TestScore_TemplateSkipsCompletionPenalty(t *testing.T) {
	s := newScorer(nil)

	gen := &models.GenerationResult{
		Text:         "To register as a voter, fill Form 6 online at voters.eci.gov.in or the Voter Helpline app.",
		Confidence:   0.75,
		FromTemplate: true,
	}
	score := s.Score(Inputs{MaxRetrievalSim: 0.6, MeanRerank: 0.6, Generation: gen, HasCitation: false})

	// Validation: 1.0 - 0.2 (no citation); template answers have no tokens
	expected := 0.2*0.6 + 0.4*0.6 + 0.2*0.75 + 0.2*0.8
	assert.InDelta(t, expected, score, 0.001)
}

func TestScore_Clamped(t *testing.T) {
	s := newScorer(nil)

	gen := goodGeneration()
	gen.SelfReported = 1.0
	gen.HasSelfReported = true

	score := s.Score(Inputs{MaxRetrievalSim: 1.0, MeanRerank: 1.0, Generation: gen, HasCitation: true})
	assert.LessOrEqual(t, score, 1.0)
}

func TestDecide_LowConfidenceEscalates(t *testing.T) {
	store := &memStore{}
	s := newScorer(store)

	out := &models.RAGOutput{Confidence: 0.4}
	s.Decide(context.Background(), out, "query", "en", models.CategoryGeneralFAQ, "user-1")

	assert.True(t, out.Escalate)
	assert.Equal(t, "low_confidence", out.EscalationReason)
	require.Len(t, store.records, 1)
	assert.Equal(t, 0.4, store.records[0].Confidence)
	assert.NotEmpty(t, store.records[0].ID)
}

func TestDecide_SafetyFlagOutranksConfidence(t *testing.T) {
	store := &memStore{}
	s := newScorer(store)

	out := &models.RAGOutput{
		Confidence: 0.9,
		Safety:     &models.SafetyResult{Flagged: true, Rule: models.RulePoliticalQuery},
	}
	s.Decide(context.Background(), out, "query", "en", models.CategoryOutOfScope, "")

	assert.True(t, out.Escalate)
	assert.Equal(t, "safety_flagged", out.EscalationReason)
	require.Len(t, store.records, 1)
	assert.Equal(t, models.RulePoliticalQuery, store.records[0].SafetyRule)
}

func TestDecide_ConfidentAnswerDoesNotEscalate(t *testing.T) {
	store := &memStore{}
	s := newScorer(store)

	out := &models.RAGOutput{Confidence: 0.8}
	s.Decide(context.Background(), out, "query", "en", models.CategoryFormGuidance, "")

	assert.False(t, out.Escalate)
	assert.Empty(t, store.records)
}

func TestDecide_StoreFailureDoesNotPropagate(t *testing.T) {
	store := &memStore{err: fmt.Errorf("disk full")}
	s := newScorer(store)

	out := &models.RAGOutput{Confidence: 0.2}
	s.Decide(context.Background(), out, "query", "en", models.CategoryGeneralFAQ, "")

	assert.True(t, out.Escalate, "persistence failure must not suppress escalation")
}

func TestDecide_NilStore(t *testing.T) {
	s := newScorer(nil)
	s.store = nil

	out := &models.RAGOutput{Confidence: 0.2}
	s.Decide(context.Background(), out, "query", "en", models.CategoryGeneralFAQ, "")
	assert.True(t, out.Escalate)
}
