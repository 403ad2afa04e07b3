package badger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/janmitra/janmitra/internal/models"
)

func openTestStore(t *testing.T) *EscalationStore {
	t.Helper()
	store, err := NewEscalationStore(t.TempDir(), arbor.NewLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestEscalationStore_RecordAndList(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	older := &models.EscalationRecord{
		ID:         "esc_1",
		CreatedAt:  time.Now().UTC().Add(-time.Hour),
		Query:      "obscure procedural question",
		Locale:     "en",
		Confidence: 0.4,
		Reason:     "low_confidence",
	}
	newer := &models.EscalationRecord{
		ID:            "esc_2",
		CreatedAt:     time.Now().UTC(),
		Query:         "which party should I vote for",
		Locale:        "en",
		Confidence:    0.9,
		SafetyFlagged: true,
		SafetyRule:    models.RulePoliticalQuery,
		Reason:        "safety_flagged",
	}

	require.NoError(t, store.Record(ctx, older))
	require.NoError(t, store.Record(ctx, newer))

	records, err := store.List(10)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "esc_2", records[0].ID, "newest first")
	assert.Equal(t, models.RulePoliticalQuery, records[0].SafetyRule)
	assert.Equal(t, "esc_1", records[1].ID)
}

func TestEscalationStore_ListLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i, id := range []string{"esc_a", "esc_b", "esc_c"} {
		require.NoError(t, store.Record(ctx, &models.EscalationRecord{
			ID:        id,
			CreatedAt: time.Now().UTC().Add(time.Duration(i) * time.Minute),
			Reason:    "low_confidence",
		}))
	}

	records, err := store.List(2)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestEscalationStore_RejectsMissingID(t *testing.T) {
	store := openTestStore(t)

	err := store.Record(context.Background(), &models.EscalationRecord{Reason: "low_confidence"})
	assert.Error(t, err)
}
