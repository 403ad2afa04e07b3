package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ternarybob/arbor"

	"github.com/janmitra/janmitra/internal/common"
	"github.com/janmitra/janmitra/internal/interfaces"
)

func TestDetectBackend(t *testing.T) {
	cfg := &common.ProviderConfig{DefaultProvider: "rest"}
	f := NewFactory(cfg, arbor.NewLogger())

	assert.Equal(t, backendClaude, f.detectBackend("claude-sonnet-4-20250514"))
	assert.Equal(t, backendGemini, f.detectBackend("gemini-2.5-flash"))
	assert.Equal(t, backendREST, f.detectBackend("civic-answer-large"))
	assert.Equal(t, backendREST, f.detectBackend(""))
}

func TestDetectBackend_DefaultProviderFallback(t *testing.T) {
	cfg := &common.ProviderConfig{DefaultProvider: "claude"}
	f := NewFactory(cfg, arbor.NewLogger())

	assert.Equal(t, backendClaude, f.detectBackend("some-model"))
}

func TestConfigured(t *testing.T) {
	cfg := &common.ProviderConfig{
		APIKey: "secret",
		Chat:   common.EndpointConfig{Model: "claude-sonnet-4-20250514"},
		Rerank: common.EndpointConfig{BaseURL: "https://api.example.com/v1", Model: "civic-rerank"},
	}
	f := NewFactory(cfg, arbor.NewLogger())

	// Claude chat needs no base URL; REST rerank does
	assert.True(t, f.Configured(interfaces.OpChat))
	assert.True(t, f.Configured(interfaces.OpRerank))
	assert.False(t, f.Configured(interfaces.OpEmbedding), "no embedding model configured")
	assert.False(t, f.Configured(interfaces.OpTranscription))
}

func TestConfigured_MissingCredential(t *testing.T) {
	cfg := &common.ProviderConfig{
		Chat: common.EndpointConfig{BaseURL: "https://api.example.com/v1", Model: "civic-answer-large"},
	}
	f := NewFactory(cfg, arbor.NewLogger())

	assert.False(t, f.Configured(interfaces.OpChat), "missing credential must be detected eagerly")
}
