package badger

import (
	"context"
	"fmt"
	"os"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/janmitra/janmitra/internal/interfaces"
	"github.com/janmitra/janmitra/internal/models"
)

// EscalationStore persists flagged interactions in a local Badger database
// for later review. Records are write-once; review tooling reads them out of
// band.
type EscalationStore struct {
	store  *badgerhold.Store
	logger arbor.ILogger
}

// NewEscalationStore opens the Badger database at path, creating it if needed
func NewEscalationStore(path string, logger arbor.ILogger) (*EscalationStore, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create escalation directory: %w", err)
	}

	options := badgerhold.DefaultOptions
	options.Dir = path
	options.ValueDir = path
	options.Logger = nil // Badger's own logger is noisy; arbor covers ours

	store, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to open escalation database: %w", err)
	}

	logger.Debug().Str("path", path).Msg("Escalation store opened")

	return &EscalationStore{
		store:  store,
		logger: logger,
	}, nil
}

// Record inserts an escalation record
func (s *EscalationStore) Record(ctx context.Context, rec *models.EscalationRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("escalation record requires an ID")
	}

	if err := s.store.Insert(rec.ID, rec); err != nil {
		return fmt.Errorf("failed to store escalation record: %w", err)
	}

	s.logger.Debug().
		Str("escalation_id", rec.ID).
		Str("reason", rec.Reason).
		Msg("Escalation record stored")

	return nil
}

// List returns the most recent escalation records, newest first
func (s *EscalationStore) List(limit int) ([]*models.EscalationRecord, error) {
	var records []*models.EscalationRecord

	query := badgerhold.Where("ID").Ne("").SortBy("CreatedAt").Reverse()
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := s.store.Find(&records, query); err != nil {
		return nil, fmt.Errorf("failed to list escalation records: %w", err)
	}

	return records, nil
}

// Close closes the database
func (s *EscalationStore) Close() error {
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}

// Ensure EscalationStore implements the store interface
var _ interfaces.EscalationStore = (*EscalationStore)(nil)
