package common

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string           `toml:"environment"` // "development" or "production"
	Logging     LoggingConfig    `toml:"logging"`
	Provider    ProviderConfig   `toml:"provider"`
	Retrieval   RetrievalConfig  `toml:"retrieval"`
	Rerank      RerankConfig     `toml:"rerank"`
	Generation  GenerationConfig `toml:"generation"`
	Cache       CacheConfig      `toml:"cache"`
	KB          KBConfig         `toml:"kb"`
	Router      RouterConfig     `toml:"router"`
	Confidence  ConfidenceConfig `toml:"confidence"`
	Storage     StorageConfig    `toml:"storage"`
}

type LoggingConfig struct {
	Level      string   `toml:"level"`       // "debug", "info", "warn", "error"
	Output     []string `toml:"output"`      // "stdout", "file"
	TimeFormat string   `toml:"time_format"` // Time format for logs
}

// EndpointConfig describes one provider capability: its own base URL and
// model identifier, reached with the shared bearer credential.
type EndpointConfig struct {
	BaseURL string `toml:"base_url"`
	Model   string `toml:"model"`
}

// ProviderConfig configures the hosted inference provider and the resilience
// wrapper around every call to it.
type ProviderConfig struct {
	APIKey          string `toml:"api_key"` // Bearer credential; JANMITRA_API_KEY overrides
	DefaultProvider string `toml:"default_provider" validate:"omitempty,oneof=rest claude gemini"`

	Chat          EndpointConfig `toml:"chat"`
	Embedding     EndpointConfig `toml:"embedding"`
	Rerank        EndpointConfig `toml:"rerank"`
	Transcription EndpointConfig `toml:"transcription"`
	Vision        EndpointConfig `toml:"vision"`

	TimeoutSeconds   int     `toml:"timeout_seconds" validate:"min=1"`   // Per-attempt bound (default 12)
	MaxRetries       int     `toml:"max_retries" validate:"min=0"`       // Transient-failure retries (default 3)
	BackoffSeconds   float64 `toml:"backoff_seconds"`                    // Initial backoff, doubled each retry (default 1)
	FailureThreshold int     `toml:"failure_threshold" validate:"min=1"` // Circuit opens at this many consecutive failures (default 5)
	ResetSeconds     int     `toml:"reset_seconds" validate:"min=1"`     // Circuit half-open window (default 60)
	RatePerSecond    float64 `toml:"rate_per_second"`                    // Provider call rate limit; 0 disables
}

type RetrievalConfig struct {
	MaxCandidates    int     `toml:"max_candidates" validate:"min=1"` // Hybrid selection cap (default 15)
	TokenBudget      int     `toml:"token_budget" validate:"min=1"`   // Default context budget (default 2048)
	VectorWeight     float64 `toml:"vector_weight"`                   // Fusion weight for vector score (default 0.6)
	LexicalWeight    float64 `toml:"lexical_weight"`                  // Fusion weight for normalized BM25 (default 0.4)
	WarmupWaitMillis int     `toml:"warmup_wait_millis"`              // Best-effort wait for embedding warm-up (default 100)
}

type RerankConfig struct {
	TopK int `toml:"top_k" validate:"min=1"` // Candidates kept after reranking (default 5)
}

type GenerationConfig struct {
	MaxContextTokens    int     `toml:"max_context_tokens" validate:"min=1"`
	MaxGenerationTokens int     `toml:"max_generation_tokens" validate:"min=1"`
	Temperature         float32 `toml:"temperature"`
}

// CacheConfig holds per-cache TTLs
type CacheConfig struct {
	EmbeddingTTL string `toml:"embedding_ttl"` // default "24h"
	RerankTTL    string `toml:"rerank_ttl"`    // default "1h"
	AnswerTTL    string `toml:"answer_ttl"`    // default "24h"
}

type KBConfig struct {
	DataDir string `toml:"data_dir"` // Directory of .yaml/.md/.html knowledge files; empty uses the built-in seed set
}

type RouterConfig struct {
	EngineMinConfidence float64 `toml:"engine_min_confidence"` // Classifier confidence needed for engine dispatch (default 0.4)
}

type ConfidenceConfig struct {
	EscalationThreshold float64 `toml:"escalation_threshold"` // default 0.55
}

type StorageConfig struct {
	EscalationPath string `toml:"escalation_path"` // Badger directory for escalation records; empty disables persistence
}

// DefaultConfig returns a config with all tunables at their documented defaults
func DefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Logging: LoggingConfig{
			Level:      "info",
			Output:     []string{"stdout"},
			TimeFormat: "15:04:05",
		},
		Provider: ProviderConfig{
			DefaultProvider:  "rest",
			TimeoutSeconds:   12,
			MaxRetries:       3,
			BackoffSeconds:   1,
			FailureThreshold: 5,
			ResetSeconds:     60,
		},
		Retrieval: RetrievalConfig{
			MaxCandidates:    15,
			TokenBudget:      2048,
			VectorWeight:     0.6,
			LexicalWeight:    0.4,
			WarmupWaitMillis: 100,
		},
		Rerank: RerankConfig{TopK: 5},
		Generation: GenerationConfig{
			MaxContextTokens:    8192,
			MaxGenerationTokens: 1024,
			Temperature:         0.2,
		},
		Cache: CacheConfig{
			EmbeddingTTL: "24h",
			RerankTTL:    "1h",
			AnswerTTL:    "24h",
		},
		Router:     RouterConfig{EngineMinConfidence: 0.4},
		Confidence: ConfidenceConfig{EscalationThreshold: 0.55},
	}
}

// LoadConfig reads a TOML config file over the defaults and validates it.
// A missing path returns the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// Credential from environment takes precedence over the file
	if key := os.Getenv("JANMITRA_API_KEY"); key != "" {
		cfg.Provider.APIKey = key
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Timeout returns the per-attempt provider timeout
func (p *ProviderConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}

// Backoff returns the initial retry backoff
func (p *ProviderConfig) Backoff() time.Duration {
	if p.BackoffSeconds <= 0 {
		return time.Second
	}
	return time.Duration(p.BackoffSeconds * float64(time.Second))
}

// ResetWindow returns the circuit breaker reset window
func (p *ProviderConfig) ResetWindow() time.Duration {
	return time.Duration(p.ResetSeconds) * time.Second
}

// TTL parses a cache TTL string, falling back to the given default
func (c *CacheConfig) TTL(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
