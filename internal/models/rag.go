package models

// Message represents a single turn in a conversation
type Message struct {
	Role    string `json:"role"` // "user", "assistant", or "system"
	Content string `json:"content"`
}

// RAGInput is the request for direct retrieval-augmented generation,
// bypassing modality detection.
type RAGInput struct {
	Query               string    `json:"query"`
	Locale              string    `json:"locale"` // "en" or "hi"
	ConversationHistory []Message `json:"conversation_history,omitempty"`
	UserID              string    `json:"user_id,omitempty"`
	TokenBudget         int       `json:"token_budget,omitempty"` // Context budget for retrieved passages; 0 uses the configured default
}

// Citation is a source reference derived from a top-ranked passage
type Citation struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// TraceEntry records one reranked passage for the audit trail
type TraceEntry struct {
	DocID         string  `json:"doc_id"`
	Similarity    float64 `json:"similarity"`
	RerankerScore float64 `json:"reranker_score"`
}

// RerankResult pairs a passage with its cross-encoder score
type RerankResult struct {
	Passage       *Passage `json:"passage"`
	RerankerScore float64  `json:"reranker_score"` // In [0,1]
	OriginalRank  int      `json:"original_rank"`  // Index in retrieval order before reranking
}

// RetrievalResult is the output of hybrid retrieval over the passage collection
type RetrievalResult struct {
	Passages      []*Passage `json:"passages"`
	TokenEstimate int        `json:"token_estimate"`
	VectorUsed    bool       `json:"vector_used"` // False when retrieval degraded to lexical-only
	LexicalMs     int64      `json:"lexical_ms"`
	VectorMs      int64      `json:"vector_ms"`
}

// MaxSimilarity returns the highest passage score, or 0 for an empty result
func (r *RetrievalResult) MaxSimilarity() float64 {
	max := 0.0
	for _, p := range r.Passages {
		if p.Score > max {
			max = p.Score
		}
	}
	return max
}

// RAGOutput is the confidence-scored, safety-filtered answer with its
// auditable retrieval trace.
type RAGOutput struct {
	Text             string        `json:"text"`
	Confidence       float64       `json:"confidence"` // In [0,1]
	Sources          []Citation    `json:"sources,omitempty"`
	RetrievalTrace   []TraceEntry  `json:"retrieval_trace,omitempty"`
	Escalate         bool          `json:"escalate"`
	EscalationReason string        `json:"escalation_reason,omitempty"`
	Safety           *SafetyResult `json:"safety,omitempty"`

	// Audit fields
	RequestID        string `json:"request_id"`
	RetrievalMs      int64  `json:"retrieval_ms"`
	RerankMs         int64  `json:"rerank_ms"`
	GenerationMs     int64  `json:"generation_ms"`
	PromptTokens     int    `json:"prompt_tokens"`
	CompletionTokens int    `json:"completion_tokens"`
}
