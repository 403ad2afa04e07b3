package models

// GenerationResult is the cleaned output of the grounded generation step
type GenerationResult struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"` // Length/truncation heuristic in [0,1]

	// SelfReported is the confidence the model emitted via its explicit
	// confidence tag. HasSelfReported is false when no tag was present.
	SelfReported    float64 `json:"self_reported"`
	HasSelfReported bool    `json:"has_self_reported"`

	PromptTokens     int    `json:"prompt_tokens"`
	CompletionTokens int    `json:"completion_tokens"`
	ModelID          string `json:"model_id"`
	Truncated        bool   `json:"truncated"`     // Provider reported a length-truncated completion
	FromTemplate     bool   `json:"from_template"` // Answer came from the deterministic template fallback
}
