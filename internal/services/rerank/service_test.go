package rerank

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/janmitra/janmitra/internal/interfaces"
	"github.com/janmitra/janmitra/internal/models"
	"github.com/janmitra/janmitra/internal/resilience"
)

type rerankFake struct {
	interfaces.InferenceService
	configured bool
	scores     []float64
	fail       bool
	calls      atomic.Int64
}

func (f *rerankFake) Configured(op interfaces.Operation) bool {
	return f.configured
}

func (f *rerankFake) Rerank(ctx context.Context, query string, documents []string) ([]float64, error) {
	f.calls.Add(1)
	if f.fail {
		return nil, &resilience.HTTPError{StatusCode: 503}
	}
	return f.scores, nil
}

func candidates() []*models.Passage {
	return []*models.Passage{
		{ID: "a", Content: "first", Score: 0.9},
		{ID: "b", Content: "second", Score: 0.8},
		{ID: "c", Content: "third", Score: 0.7},
	}
}

func newTestService(f *rerankFake) *Service {
	res := resilience.NewClient(resilience.Options{
		Timeout:    time.Second,
		MaxRetries: 2,
		Backoff:    time.Millisecond,
	}, arbor.NewLogger())
	return NewService(f, res, resilience.NewTTLCache(time.Hour), arbor.NewLogger())
}

func TestRerank_OrdersByCrossEncoderScore(t *testing.T) {
	f := &rerankFake{configured: true, scores: []float64{0.1, 0.95, 0.5}}
	svc := newTestService(f)

	results, err := svc.Rerank(context.Background(), "query", candidates(), 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "b", results[0].Passage.ID)
	assert.Equal(t, 1, results[0].OriginalRank)
	assert.Equal(t, "c", results[1].Passage.ID)
}

func TestRerank_ProviderFailureDegrades(t *testing.T) {
	f := &rerankFake{configured: true, fail: true}
	svc := newTestService(f)

	results, err := svc.Rerank(context.Background(), "query", candidates(), 2)
	require.NoError(t, err, "a reranker outage must never fail the pipeline")
	require.Len(t, results, 2)

	// Retrieval order with retrieval scores reused
	assert.Equal(t, "a", results[0].Passage.ID)
	assert.Equal(t, 0.9, results[0].RerankerScore)
	assert.Equal(t, "b", results[1].Passage.ID)
	assert.Equal(t, int64(3), f.calls.Load(), "transient failures are retried before degrading")
}

func TestRerank_UnconfiguredSkipsProvider(t *testing.T) {
	f := &rerankFake{configured: false}
	svc := newTestService(f)

	results, err := svc.Rerank(context.Background(), "query", candidates(), 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "a", results[0].Passage.ID)
	assert.Equal(t, int64(0), f.calls.Load())
}

func TestRerank_CacheHit(t *testing.T) {
	f := &rerankFake{configured: true, scores: []float64{0.1, 0.95, 0.5}}
	svc := newTestService(f)

	_, err := svc.Rerank(context.Background(), "query", candidates(), 3)
	require.NoError(t, err)

	// Same candidate set in a different order still hits
	reordered := candidates()
	reordered[0], reordered[2] = reordered[2], reordered[0]
	results, err := svc.Rerank(context.Background(), "query", reordered, 3)
	require.NoError(t, err)

	assert.Equal(t, int64(1), f.calls.Load(), "second call within TTL must be a cache hit")
	assert.Equal(t, "b", results[0].Passage.ID, "cached scores must follow passage IDs, not positions")
}

func TestRerank_Empty(t *testing.T) {
	svc := newTestService(&rerankFake{configured: true})

	results, err := svc.Rerank(context.Background(), "query", nil, 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}
