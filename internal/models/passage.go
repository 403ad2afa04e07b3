package models

// RetrievalMethod identifies how a passage score was produced
type RetrievalMethod string

const (
	// MethodVector indicates the score is a cosine similarity against the query embedding
	MethodVector RetrievalMethod = "vector"
	// MethodBM25 indicates the score is a normalized lexical BM25 score
	MethodBM25 RetrievalMethod = "bm25"
	// MethodHybrid indicates the score is a weighted fusion of vector and BM25
	MethodHybrid RetrievalMethod = "hybrid"
)

// PassageMetadata carries source attribution for a retrievable passage
type PassageMetadata struct {
	Source      string `json:"source" yaml:"source"`             // Human-readable source title
	URL         string `json:"url" yaml:"url"`                   // Canonical URL of the source
	LastUpdated string `json:"last_updated" yaml:"last_updated"` // ISO date the source was last updated
	Section     string `json:"section,omitempty" yaml:"section"` // Optional section or page reference
}

// Passage is a unit of retrievable knowledge held in the in-memory collection.
// Passages are immutable once loaded at startup; retrieval returns scored
// copies rather than mutating the collection.
type Passage struct {
	ID       string          `json:"id"`
	Content  string          `json:"content"`
	Metadata PassageMetadata `json:"metadata"`
	Score    float64         `json:"score"`  // In [0,1] after normalization; meaning depends on Method
	Method   RetrievalMethod `json:"method"` // vector, bm25, or hybrid
}

// WithScore returns a scored copy of the passage, leaving the original untouched
func (p *Passage) WithScore(score float64, method RetrievalMethod) *Passage {
	scored := *p
	scored.Score = score
	scored.Method = method
	return &scored
}
