package app

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/janmitra/janmitra/internal/common"
	"github.com/janmitra/janmitra/internal/interfaces"
	"github.com/janmitra/janmitra/internal/resilience"
	"github.com/janmitra/janmitra/internal/services/classifier"
	"github.com/janmitra/janmitra/internal/services/confidence"
	"github.com/janmitra/janmitra/internal/services/embeddings"
	"github.com/janmitra/janmitra/internal/services/generation"
	"github.com/janmitra/janmitra/internal/services/kb"
	"github.com/janmitra/janmitra/internal/services/provider"
	"github.com/janmitra/janmitra/internal/services/rag"
	"github.com/janmitra/janmitra/internal/services/rerank"
	"github.com/janmitra/janmitra/internal/services/retrieval"
	"github.com/janmitra/janmitra/internal/services/router"
	"github.com/janmitra/janmitra/internal/services/safety"
	storagebadger "github.com/janmitra/janmitra/internal/storage/badger"
)

// Cache TTLs used when the config carries no override
const (
	defaultEmbeddingTTL = 24 * time.Hour
	defaultRerankTTL    = time.Hour
	defaultAnswerTTL    = 24 * time.Hour
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	Provider   *provider.Factory
	Resilience *resilience.Client

	Collection *kb.Collection
	Embeddings interfaces.EmbeddingService
	Retrieval  interfaces.RetrievalService
	Reranker   interfaces.RerankService
	Generator  interfaces.GenerationService

	Classifier interfaces.ClassifierService
	Safety     interfaces.SafetyService
	Engine     interfaces.EngineService

	Escalations  interfaces.EscalationStore
	Scorer       *confidence.Scorer
	Orchestrator interfaces.RAGOrchestrator
	Router       interfaces.RouterService

	ctx       context.Context
	cancelCtx context.CancelFunc
}

// New builds the full service graph from configuration. The knowledge base
// is loaded synchronously; its embedding warm-up runs detached so startup
// never blocks on the provider.
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())

	a := &App{
		Config:    cfg,
		Logger:    logger,
		ctx:       ctx,
		cancelCtx: cancel,
	}

	a.Resilience = resilience.NewClient(resilience.Options{
		Timeout:          cfg.Provider.Timeout(),
		MaxRetries:       cfg.Provider.MaxRetries,
		Backoff:          cfg.Provider.Backoff(),
		FailureThreshold: cfg.Provider.FailureThreshold,
		ResetWindow:      cfg.Provider.ResetWindow(),
		RatePerSecond:    cfg.Provider.RatePerSecond,
	}, logger)

	a.Provider = provider.NewFactory(&cfg.Provider, logger)
	logger.Info().Str("backends", a.Provider.String()).Msg("Inference provider configured")

	// Per-concern TTL caches
	embeddingCache := resilience.NewTTLCache(cfg.Cache.TTL(cfg.Cache.EmbeddingTTL, defaultEmbeddingTTL))
	rerankCache := resilience.NewTTLCache(cfg.Cache.TTL(cfg.Cache.RerankTTL, defaultRerankTTL))
	answerCache := resilience.NewTTLCache(cfg.Cache.TTL(cfg.Cache.AnswerTTL, defaultAnswerTTL))

	a.Embeddings = embeddings.NewService(a.Provider, a.Resilience, embeddingCache, logger)

	// Knowledge base: load now, embed in the background
	passages, err := kb.NewLoader(logger).Load(cfg.KB.DataDir)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to load knowledge base: %w", err)
	}
	a.Collection = kb.NewCollection(passages, logger)
	common.SafeGo(logger, "kb-warmup", func() {
		a.Collection.Warm(a.ctx, a.Embeddings)
	})

	a.Retrieval = retrieval.NewService(a.Collection, a.Embeddings, &cfg.Retrieval, logger)
	a.Reranker = rerank.NewService(a.Provider, a.Resilience, rerankCache, logger)
	a.Generator = generation.NewService(a.Provider, a.Resilience, generation.NewDefaultSanitizer(), &cfg.Generation, logger)

	a.Classifier = classifier.NewService(logger)
	a.Safety = safety.NewService(logger)
	a.Engine = router.NewEngine(logger)

	if cfg.Storage.EscalationPath != "" {
		store, err := storagebadger.NewEscalationStore(cfg.Storage.EscalationPath, logger)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("failed to open escalation store: %w", err)
		}
		a.Escalations = store
	} else {
		logger.Warn().Msg("No escalation path configured, escalations will not be persisted")
	}

	a.Scorer = confidence.NewScorer(&cfg.Confidence, a.Escalations, logger)

	a.Orchestrator = rag.NewOrchestrator(
		a.Retrieval,
		a.Reranker,
		a.Generator,
		a.Classifier,
		a.Safety,
		a.Scorer,
		answerCache,
		cfg,
		logger,
	)

	a.Router = router.NewService(
		a.Provider,
		a.Resilience,
		a.Classifier,
		a.Engine,
		a.Orchestrator,
		a.Collection,
		cfg,
		logger,
	)

	logger.Info().
		Int("passages", a.Collection.Size()).
		Str("environment", cfg.Environment).
		Msg("Application initialized")

	return a, nil
}

// WaitReady blocks up to d for the embedding warm-up, mainly for one-shot
// CLI runs where answering before warm-up wastes the vector index.
func (a *App) WaitReady(d time.Duration) bool {
	return a.Collection.WaitReady(d)
}

// Close releases all resources
func (a *App) Close() error {
	a.cancelCtx()

	var firstErr error
	if a.Escalations != nil {
		if err := a.Escalations.Close(); err != nil {
			firstErr = err
		}
	}
	if err := a.Provider.Close(); err != nil && firstErr == nil {
		firstErr = err
	}

	a.Logger.Info().Msg("Application shut down")
	return firstErr
}
