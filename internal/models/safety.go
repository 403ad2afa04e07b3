package models

// SafetyRule identifies which check flagged an interaction
type SafetyRule string

const (
	RulePoliticalQuery    SafetyRule = "political_query"
	RuleOutOfScopeTopic   SafetyRule = "out_of_scope_topic"
	RuleAdversarial       SafetyRule = "adversarial"
	RulePoliticalResponse SafetyRule = "political_response"
)

// SafetyResult is the outcome of the safety filter pass. A flagged result is
// a first-class successful outcome, not an error: Response holds the fixed
// neutral substitute text.
type SafetyResult struct {
	Flagged  bool       `json:"flagged"`
	Rule     SafetyRule `json:"rule,omitempty"`
	Response string     `json:"response,omitempty"` // Neutral, locale-appropriate substitute when flagged
	Redacted bool       `json:"redacted"`           // Whether the PII pass masked anything
}
