package models

// Category represents a civic-intent category assigned by the query classifier
type Category string

const (
	CategoryBoothQuery   Category = "booth_query"
	CategoryRollLookup   Category = "roll_lookup"
	CategoryFormGuidance Category = "form_guidance"
	CategoryVotingRules  Category = "voting_rules"
	CategoryComplaint    Category = "complaint"
	CategoryTimeline     Category = "timeline"
	CategoryGeneralFAQ   Category = "general_faq"
	CategoryOutOfScope   Category = "out_of_scope"
)

// ClassificationResult holds the outcome of deterministic intent classification.
// When Category is CategoryOutOfScope, Confidence is floored at 0.85 so
// ambiguity never suppresses the safety boundary.
type ClassificationResult struct {
	Category        Category          `json:"category"`
	Confidence      float64           `json:"confidence"` // In [0,1]
	SubIntent       string            `json:"sub_intent,omitempty"`
	ExtractedParams map[string]string `json:"extracted_params,omitempty"` // e.g. epic_number, pincode, booth_number
}
