package kb

import (
	"context"
	"sync"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/janmitra/janmitra/internal/interfaces"
	"github.com/janmitra/janmitra/internal/models"
)

// Collection is the fixed in-memory passage collection, loaded once at
// startup and immutable for the life of the process. Passage embeddings are
// warmed lazily in the background; requests that need vector scores wait
// briefly for warm-up and otherwise degrade to lexical-only scoring.
type Collection struct {
	passages []*models.Passage

	mu      sync.RWMutex
	vectors []models.Vector
	ready   chan struct{}
	once    sync.Once

	logger arbor.ILogger
}

// NewCollection wraps a loaded passage set
func NewCollection(passages []*models.Passage, logger arbor.ILogger) *Collection {
	return &Collection{
		passages: passages,
		vectors:  make([]models.Vector, len(passages)),
		ready:    make(chan struct{}),
		logger:   logger,
	}
}

// Passages returns the immutable passage set
func (c *Collection) Passages() []*models.Passage {
	return c.passages
}

// Size returns the number of passages
func (c *Collection) Size() int {
	return len(c.passages)
}

// Warm computes passage embeddings once. Intended to run as a detached task
// at startup; subsequent calls are no-ops.
func (c *Collection) Warm(ctx context.Context, embedder interfaces.EmbeddingService) {
	c.once.Do(func() {
		defer close(c.ready)

		if len(c.passages) == 0 {
			return
		}

		start := time.Now()
		texts := make([]string, len(c.passages))
		for i, p := range c.passages {
			texts[i] = p.Content
		}

		vectors, err := embedder.EmbedDocuments(ctx, texts)
		if err != nil {
			c.logger.Warn().Err(err).Msg("Knowledge base embedding warm-up failed, retrieval stays lexical-only")
			return
		}

		embedded := 0
		for _, v := range vectors {
			if v.Valid {
				embedded++
			}
		}

		c.mu.Lock()
		c.vectors = vectors
		c.mu.Unlock()

		c.logger.Info().
			Int("passages", len(c.passages)).
			Int("embedded", embedded).
			Dur("duration", time.Since(start)).
			Msg("Knowledge base embedding warm-up complete")
	})
}

// WaitReady waits up to d for warm-up completion, returning whether it
// finished. Retrieval uses a short best-effort wait rather than blocking.
func (c *Collection) WaitReady(d time.Duration) bool {
	select {
	case <-c.ready:
		return true
	case <-time.After(d):
		return false
	}
}

// Vector returns the embedding for passage i, absent if warm-up failed or
// the batch containing it failed.
func (c *Collection) Vector(i int) models.Vector {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i < 0 || i >= len(c.vectors) {
		return models.NoVector()
	}
	return c.vectors[i]
}

// VectorsComplete reports whether every passage has a valid embedding.
// Hybrid fusion applies only when vector scores cover the whole collection.
func (c *Collection) VectorsComplete() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.vectors) != len(c.passages) || len(c.passages) == 0 {
		return false
	}
	for _, v := range c.vectors {
		if !v.Valid {
			return false
		}
	}
	return true
}
