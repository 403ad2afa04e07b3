package common

import (
	"github.com/google/uuid"
)

// NewRequestID generates a unique request ID with the "req_" prefix
func NewRequestID() string {
	return "req_" + uuid.New().String()
}

// NewEscalationID generates a unique escalation record ID with the "esc_" prefix
func NewEscalationID() string {
	return "esc_" + uuid.New().String()
}
