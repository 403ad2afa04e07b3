package retrieval

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/janmitra/janmitra/internal/common"
	"github.com/janmitra/janmitra/internal/models"
	"github.com/janmitra/janmitra/internal/services/kb"
)

var testPassages = []*models.Passage{
	{
		ID:      "registration",
		Content: "To register as a new voter, fill Form 6 online at the voter services portal.",
		Metadata: models.PassageMetadata{
			Source: "Registration guide",
			URL:    "https://voters.eci.gov.in",
		},
	},
	{
		ID:      "booths",
		Content: "Find your polling booth by searching the electoral roll with your EPIC ID.",
	},
	{
		ID:      "timeline",
		Content: "Campaigning ends 48 hours before polling day during the silence period.",
	},
}

type fixedEmbedder struct {
	queryErr error
}

func (f *fixedEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return []float32{1, 0}, nil
}

func (f *fixedEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([]models.Vector, error) {
	vectors := make([]models.Vector, len(texts))
	for i := range texts {
		vectors[i] = models.SomeVector([]float32{1, 0})
	}
	return vectors, nil
}

func testConfig() *common.RetrievalConfig {
	cfg := common.DefaultConfig().Retrieval
	cfg.WarmupWaitMillis = 50
	return &cfg
}

func newWarmService(t *testing.T, embedder *fixedEmbedder) (*Service, *kb.Collection) {
	t.Helper()
	c := kb.NewCollection(testPassages, arbor.NewLogger())
	c.Warm(context.Background(), embedder)
	require.True(t, c.WaitReady(time.Second))
	return NewService(c, embedder, testConfig(), arbor.NewLogger()), c
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"register", "as", "a", "voter"}, tokenize("Register as a voter!"))
	assert.Equal(t, []string{"मतदान", "कहाँ", "है"}, tokenize("मतदान कहाँ है?"))
	assert.Empty(t, tokenize("  ... !!"))
}

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, estimateTokens(""))
	assert.Equal(t, 3, estimateTokens("one two"))
	assert.Equal(t, 4, estimateTokens("one two three"))
}

func TestBM25_RanksRelevantPassageFirst(t *testing.T) {
	idx := newBM25Index(testPassages)
	scores := idx.scoreAll("how do I register as a voter")

	require.Len(t, scores, 3)
	assert.Greater(t, scores[0], scores[2], "registration passage must outscore timeline")
}

func TestBM25_SubstringMatchesInflections(t *testing.T) {
	idx := newBM25Index([]*models.Passage{
		{ID: "a", Content: "Campaigning is prohibited during the silence period."},
		{ID: "b", Content: "Postal ballots must reach the returning officer."},
	})
	// "campaign" matches "Campaigning" by containment
	scores := idx.scoreAll("campaign rules")
	assert.Greater(t, scores[0], scores[1])
}

func TestNormalize_Floor(t *testing.T) {
	normalized := normalize([]float64{0.0001, 0.00005})
	assert.Less(t, normalized[0], 0.2, "tiny scores must not be inflated to 1.0")
}

func TestRetrieve_LexicalOnlyBeforeWarmup(t *testing.T) {
	c := kb.NewCollection(testPassages, arbor.NewLogger())
	svc := NewService(c, &fixedEmbedder{}, testConfig(), arbor.NewLogger())

	result, err := svc.Retrieve(context.Background(), "register as a voter", 0)
	require.NoError(t, err)

	assert.False(t, result.VectorUsed)
	require.NotEmpty(t, result.Passages)
	assert.Equal(t, "registration", result.Passages[0].ID)
	assert.Equal(t, models.MethodBM25, result.Passages[0].Method)
}

func TestRetrieve_HybridAfterWarmup(t *testing.T) {
	svc, _ := newWarmService(t, &fixedEmbedder{})

	result, err := svc.Retrieve(context.Background(), "register as a voter", 0)
	require.NoError(t, err)

	assert.True(t, result.VectorUsed)
	require.NotEmpty(t, result.Passages)
	assert.Equal(t, "registration", result.Passages[0].ID)
	assert.Equal(t, models.MethodHybrid, result.Passages[0].Method)
	for _, p := range result.Passages {
		assert.GreaterOrEqual(t, p.Score, 0.0)
		assert.LessOrEqual(t, p.Score, 1.0)
	}
}

func TestRetrieve_QueryEmbeddingFailureDegrades(t *testing.T) {
	embedder := &fixedEmbedder{}
	svc, _ := newWarmService(t, embedder)
	embedder.queryErr = fmt.Errorf("provider down")

	result, err := svc.Retrieve(context.Background(), "register as a voter", 0)
	require.NoError(t, err, "embedding failure must degrade, not fail")
	assert.False(t, result.VectorUsed)
}

func TestRetrieve_TokenBudgetCut(t *testing.T) {
	c := kb.NewCollection(testPassages, arbor.NewLogger())
	svc := NewService(c, &fixedEmbedder{}, testConfig(), arbor.NewLogger())

	// Room for the top passage (20 estimated tokens) but not a second one
	result, err := svc.Retrieve(context.Background(), "register voter booth polling", 25)
	require.NoError(t, err)
	assert.Len(t, result.Passages, 1)
	assert.Equal(t, "registration", result.Passages[0].ID)
	assert.LessOrEqual(t, result.TokenEstimate, 25)
}

func TestRetrieve_BudgetSmallerThanAnyPassage(t *testing.T) {
	c := kb.NewCollection(testPassages, arbor.NewLogger())
	svc := NewService(c, &fixedEmbedder{}, testConfig(), arbor.NewLogger())

	result, err := svc.Retrieve(context.Background(), "register voter booth polling", 3)
	require.NoError(t, err)
	assert.Empty(t, result.Passages, "no passage fits a three-token budget")
	assert.Zero(t, result.TokenEstimate)
}

func TestRetrieve_CollectionUnchanged(t *testing.T) {
	c := kb.NewCollection(testPassages, arbor.NewLogger())
	svc := NewService(c, &fixedEmbedder{}, testConfig(), arbor.NewLogger())

	_, err := svc.Retrieve(context.Background(), "register as a voter", 0)
	require.NoError(t, err)

	assert.Zero(t, c.Passages()[0].Score, "retrieval must return scored copies")
	assert.Empty(t, string(c.Passages()[0].Method))
}

func TestRetrieve_EmptyQuery(t *testing.T) {
	c := kb.NewCollection(testPassages, arbor.NewLogger())
	svc := NewService(c, &fixedEmbedder{}, testConfig(), arbor.NewLogger())

	_, err := svc.Retrieve(context.Background(), "", 0)
	assert.Error(t, err)
}
