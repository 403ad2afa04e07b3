package models

import "time"

// EscalationRecord captures an interaction flagged for downstream human
// review, either because confidence fell below the threshold or because the
// safety filter flagged the exchange.
type EscalationRecord struct {
	ID            string     `badgerhold:"key" json:"id"`
	CreatedAt     time.Time  `json:"created_at"`
	Query         string     `json:"query"`
	Locale        string     `json:"locale"`
	Category      Category   `json:"category,omitempty"`
	Confidence    float64    `json:"confidence"`
	SafetyFlagged bool       `json:"safety_flagged"`
	SafetyRule    SafetyRule `json:"safety_rule,omitempty"`
	Reason        string     `json:"reason"`
	SessionID     string     `json:"session_id,omitempty"`
	UserID        string     `json:"user_id,omitempty"`
}
