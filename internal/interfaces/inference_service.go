package interfaces

import (
	"context"

	"github.com/janmitra/janmitra/internal/models"
)

// Operation identifies one of the inference provider's capabilities
type Operation string

const (
	OpChat          Operation = "chat"
	OpEmbedding     Operation = "embedding"
	OpRerank        Operation = "rerank"
	OpTranscription Operation = "transcription"
	OpVision        Operation = "vision"
)

// ChatRequest is a provider-agnostic content generation request
type ChatRequest struct {
	System      string
	Messages    []models.Message
	Model       string // Empty string uses the configured default
	MaxTokens   int
	Temperature float32
}

// ChatResponse is a provider-agnostic content generation response
type ChatResponse struct {
	Text             string
	Model            string
	PromptTokens     int
	CompletionTokens int
	Truncated        bool // Completion stopped at the token limit
}

// InferenceService defines the four capabilities of the hosted inference
// provider: generation, dense-vector embedding, cross-encoder reranking, and
// speech-to-text transcription (plus vision extraction for image inputs).
//
// Implementations perform exactly one network attempt per call; timeouts,
// retries and circuit breaking are owned by the resilience client, which is
// the only code path allowed to reach the provider.
type InferenceService interface {
	// Chat generates a completion for the given request
	Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error)

	// Embed generates one dense vector per input text
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Rerank scores each document against the query with a cross-encoder,
	// returning one relevance score per document index
	Rerank(ctx context.Context, query string, documents []string) ([]float64, error)

	// Transcribe converts speech audio to text
	Transcribe(ctx context.Context, audio []byte, locale string) (string, error)

	// Describe extracts text and a short description from an image
	Describe(ctx context.Context, image []byte, prompt string) (string, error)

	// Configured reports whether the capability has credentials and endpoint
	// configuration. Misconfiguration is detected eagerly so callers can take
	// their fallback path without a network attempt.
	Configured(op Operation) bool

	// Close releases provider resources
	Close() error
}
