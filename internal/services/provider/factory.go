package provider

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ternarybob/arbor"

	"github.com/janmitra/janmitra/internal/common"
	"github.com/janmitra/janmitra/internal/interfaces"
)

// backendType identifies which backend serves a capability
type backendType string

const (
	backendREST   backendType = "rest"
	backendClaude backendType = "claude"
	backendGemini backendType = "gemini"
)

// Factory routes each capability to the right backend by model identifier:
// "claude-…" models go to the Anthropic backend, "gemini-…" models to the
// Google backend, everything else to the generic REST provider. Reranking,
// transcription and vision always use the REST provider.
type Factory struct {
	cfg    *common.ProviderConfig
	logger arbor.ILogger

	rest *RESTProvider

	mu     sync.Mutex
	claude *ClaudeProvider
	gemini *GeminiProvider
}

// NewFactory creates the provider factory. Backends are created lazily on
// first use so a misconfigured alternate backend never blocks startup.
func NewFactory(cfg *common.ProviderConfig, logger arbor.ILogger) *Factory {
	return &Factory{
		cfg:    cfg,
		logger: logger,
		rest:   NewRESTProvider(cfg, logger),
	}
}

// detectBackend determines the backend from a model string.
// Model strings can be:
//   - "claude-sonnet-4-20250514" -> Claude
//   - "gemini-2.5-flash"         -> Gemini
//   - anything else              -> configured default (REST unless overridden)
func (f *Factory) detectBackend(model string) backendType {
	model = strings.ToLower(model)
	if strings.HasPrefix(model, "claude-") || strings.HasPrefix(model, "claude/") {
		return backendClaude
	}
	if strings.HasPrefix(model, "gemini-") || strings.HasPrefix(model, "gemini/") {
		return backendGemini
	}
	switch f.cfg.DefaultProvider {
	case "claude":
		return backendClaude
	case "gemini":
		return backendGemini
	default:
		return backendREST
	}
}

func (f *Factory) getClaude() *ClaudeProvider {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.claude == nil {
		f.claude = NewClaudeProvider(f.cfg, f.logger)
	}
	return f.claude
}

func (f *Factory) getGemini(ctx context.Context) (*GeminiProvider, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gemini == nil {
		g, err := NewGeminiProvider(ctx, f.cfg, f.logger)
		if err != nil {
			return nil, err
		}
		f.gemini = g
	}
	return f.gemini, nil
}

// Chat generates content using the backend matching the requested model
func (f *Factory) Chat(ctx context.Context, req *interfaces.ChatRequest) (*interfaces.ChatResponse, error) {
	model := req.Model
	if model == "" {
		model = f.cfg.Chat.Model
	}
	backend := f.detectBackend(model)

	f.logger.Debug().
		Str("backend", string(backend)).
		Str("model", model).
		Int("message_count", len(req.Messages)).
		Msg("Generating content")

	switch backend {
	case backendClaude:
		return f.getClaude().Chat(ctx, req)
	case backendGemini:
		g, err := f.getGemini(ctx)
		if err != nil {
			return nil, err
		}
		return g.Chat(ctx, req)
	default:
		return f.rest.Chat(ctx, req)
	}
}

// Embed generates embeddings using the backend matching the embedding model
func (f *Factory) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if f.detectBackend(f.cfg.Embedding.Model) == backendGemini {
		g, err := f.getGemini(ctx)
		if err != nil {
			return nil, err
		}
		return g.Embed(ctx, texts)
	}
	return f.rest.Embed(ctx, texts)
}

// Rerank always uses the REST cross-encoder endpoint
func (f *Factory) Rerank(ctx context.Context, query string, documents []string) ([]float64, error) {
	return f.rest.Rerank(ctx, query, documents)
}

// Transcribe always uses the REST speech-to-text endpoint
func (f *Factory) Transcribe(ctx context.Context, audio []byte, locale string) (string, error) {
	return f.rest.Transcribe(ctx, audio, locale)
}

// Describe always uses the REST vision endpoint
func (f *Factory) Describe(ctx context.Context, image []byte, prompt string) (string, error) {
	return f.rest.Describe(ctx, image, prompt)
}

// Configured reports whether a capability has credentials and endpoint
// configuration. Detected eagerly so callers can take their fallback path
// without a network attempt.
func (f *Factory) Configured(op interfaces.Operation) bool {
	if f.cfg.APIKey == "" {
		return false
	}

	endpoint := func(e common.EndpointConfig, needsURL bool) bool {
		if e.Model == "" {
			return false
		}
		return !needsURL || e.BaseURL != ""
	}

	switch op {
	case interfaces.OpChat:
		// Claude and Gemini backends carry their own base URLs in the SDK
		return endpoint(f.cfg.Chat, f.detectBackend(f.cfg.Chat.Model) == backendREST)
	case interfaces.OpEmbedding:
		return endpoint(f.cfg.Embedding, f.detectBackend(f.cfg.Embedding.Model) == backendREST)
	case interfaces.OpRerank:
		return endpoint(f.cfg.Rerank, true)
	case interfaces.OpTranscription:
		return endpoint(f.cfg.Transcription, true)
	case interfaces.OpVision:
		return endpoint(f.cfg.Vision, true)
	default:
		return false
	}
}

// Close releases backend resources
func (f *Factory) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.claude = nil
	f.gemini = nil
	return nil
}

// Ensure Factory implements the inference interface
var _ interfaces.InferenceService = (*Factory)(nil)

// String describes the configured backends, for startup logging
func (f *Factory) String() string {
	return fmt.Sprintf("chat=%s embedding=%s rerank=%s",
		f.detectBackend(f.cfg.Chat.Model),
		f.detectBackend(f.cfg.Embedding.Model),
		backendREST)
}
