package interfaces

import (
	"context"

	"github.com/janmitra/janmitra/internal/models"
)

// EscalationStore records interactions flagged for human review.
type EscalationStore interface {
	Record(ctx context.Context, rec *models.EscalationRecord) error
	List(limit int) ([]*models.EscalationRecord, error)
	Close() error
}
