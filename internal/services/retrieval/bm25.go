package retrieval

import (
	"math"
	"strings"

	"github.com/janmitra/janmitra/internal/models"
)

// BM25 parameters, tuned for short civic passages
const (
	bm25K1 = 1.5
	bm25B  = 0.75
	// avgDocLen is held constant rather than computed from the corpus so
	// scores stay stable as knowledge files are added
	avgDocLen = 200.0
)

// bm25Index scores passages lexically. Term matching uses substring
// containment rather than exact token equality, which lets stem variants
// ("registered" for "register") and Hindi inflections match without a
// language-specific stemmer.
type bm25Index struct {
	contents []string // Lower-cased passage text
	lengths  []int    // Word counts
}

func newBM25Index(passages []*models.Passage) *bm25Index {
	idx := &bm25Index{
		contents: make([]string, len(passages)),
		lengths:  make([]int, len(passages)),
	}
	for i, p := range passages {
		idx.contents[i] = strings.ToLower(p.Content)
		idx.lengths[i] = len(strings.Fields(p.Content))
	}
	return idx
}

// scoreAll returns raw BM25 scores for every passage against the query terms
func (idx *bm25Index) scoreAll(query string) []float64 {
	terms := tokenize(query)
	scores := make([]float64, len(idx.contents))
	if len(terms) == 0 || len(idx.contents) == 0 {
		return scores
	}

	n := float64(len(idx.contents))
	for _, term := range terms {
		df := 0.0
		for _, content := range idx.contents {
			if strings.Contains(content, term) {
				df++
			}
		}
		if df == 0 {
			continue
		}
		idf := math.Log(1 + (n-df+0.5)/(df+0.5))

		for i, content := range idx.contents {
			tf := float64(strings.Count(content, term))
			if tf == 0 {
				continue
			}
			norm := 1 - bm25B + bm25B*float64(idx.lengths[i])/avgDocLen
			scores[i] += idf * tf * (bm25K1 + 1) / (tf + bm25K1*norm)
		}
	}
	return scores
}

// normalize max-normalizes scores into [0,1]. The denominator is floored so
// a query with uniformly tiny scores cannot blow values up to 1.0.
func normalize(scores []float64) []float64 {
	max := 0.0
	for _, s := range scores {
		if s > max {
			max = s
		}
	}
	if max < 0.001 {
		max = 0.001
	}

	normalized := make([]float64, len(scores))
	for i, s := range scores {
		normalized[i] = s / max
	}
	return normalized
}
