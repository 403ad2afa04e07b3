package provider

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/ternarybob/arbor"

	"github.com/janmitra/janmitra/internal/common"
	"github.com/janmitra/janmitra/internal/interfaces"
	"github.com/janmitra/janmitra/internal/resilience"
)

// RESTProvider reaches the hosted inference provider over its JSON REST
// surface, authenticated via the bearer credential. Each capability has its
// own base URL and model identifier. The provider performs exactly one HTTP
// attempt per call; retries and timeouts belong to the resilience client.
type RESTProvider struct {
	cfg    *common.ProviderConfig
	http   *resty.Client
	logger arbor.ILogger
}

// NewRESTProvider creates the REST backend. Retries are disabled on the
// underlying client on purpose.
func NewRESTProvider(cfg *common.ProviderConfig, logger arbor.ILogger) *RESTProvider {
	client := resty.New().
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetRetryCount(0)

	return &RESTProvider{
		cfg:    cfg,
		http:   client,
		logger: logger,
	}
}

type chatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float32       `json:"temperature,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
	Model string `json:"model"`
}

// Chat generates a completion via the chat endpoint
func (p *RESTProvider) Chat(ctx context.Context, req *interfaces.ChatRequest) (*interfaces.ChatResponse, error) {
	model := req.Model
	if model == "" {
		model = p.cfg.Chat.Model
	}

	body := chatCompletionRequest{
		Model:       model,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}
	if req.System != "" {
		body.Messages = append(body.Messages, chatMessage{Role: "system", Content: req.System})
	}
	for _, m := range req.Messages {
		body.Messages = append(body.Messages, chatMessage{Role: m.Role, Content: m.Content})
	}

	var result chatCompletionResponse
	resp, err := p.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		Post(p.cfg.Chat.BaseURL + "/chat/completions")
	if err != nil {
		return nil, fmt.Errorf("chat request failed: %w", err)
	}
	if resp.IsError() {
		return nil, &resilience.HTTPError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}
	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("empty chat response from provider")
	}

	choice := result.Choices[0]
	return &interfaces.ChatResponse{
		Text:             choice.Message.Content,
		Model:            result.Model,
		PromptTokens:     result.Usage.PromptTokens,
		CompletionTokens: result.Usage.CompletionTokens,
		Truncated:        choice.FinishReason == "length",
	}, nil
}

type embeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

// Embed generates one dense vector per input text
func (p *RESTProvider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	var result embeddingResponse
	resp, err := p.http.R().
		SetContext(ctx).
		SetBody(embeddingRequest{Model: p.cfg.Embedding.Model, Input: texts}).
		SetResult(&result).
		Post(p.cfg.Embedding.BaseURL + "/embeddings")
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	if resp.IsError() {
		return nil, &resilience.HTTPError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}
	if len(result.Data) != len(texts) {
		return nil, fmt.Errorf("provider returned %d embeddings for %d inputs", len(result.Data), len(texts))
	}

	vectors := make([][]float32, len(texts))
	for _, item := range result.Data {
		if item.Index < 0 || item.Index >= len(vectors) {
			return nil, fmt.Errorf("embedding index %d out of range", item.Index)
		}
		vectors[item.Index] = item.Embedding
	}
	return vectors, nil
}

type rerankRequest struct {
	Model     string   `json:"model"`
	Query     string   `json:"query"`
	Documents []string `json:"documents"`
}

type rerankResponse struct {
	Results []struct {
		Index          int     `json:"index"`
		RelevanceScore float64 `json:"relevance_score"`
	} `json:"results"`
}

// Rerank scores each document against the query with the cross-encoder model
func (p *RESTProvider) Rerank(ctx context.Context, query string, documents []string) ([]float64, error) {
	var result rerankResponse
	resp, err := p.http.R().
		SetContext(ctx).
		SetBody(rerankRequest{Model: p.cfg.Rerank.Model, Query: query, Documents: documents}).
		SetResult(&result).
		Post(p.cfg.Rerank.BaseURL + "/rerank")
	if err != nil {
		return nil, fmt.Errorf("rerank request failed: %w", err)
	}
	if resp.IsError() {
		return nil, &resilience.HTTPError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}

	scores := make([]float64, len(documents))
	for _, r := range result.Results {
		if r.Index >= 0 && r.Index < len(scores) {
			scores[r.Index] = r.RelevanceScore
		}
	}
	if len(result.Results) == 0 {
		return nil, fmt.Errorf("empty rerank response from provider")
	}
	return scores, nil
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

// Transcribe converts speech audio to text
func (p *RESTProvider) Transcribe(ctx context.Context, audio []byte, locale string) (string, error) {
	var result transcriptionResponse
	resp, err := p.http.R().
		SetContext(ctx).
		SetFileReader("file", "audio.ogg", bytes.NewReader(audio)).
		SetFormData(map[string]string{
			"model":    p.cfg.Transcription.Model,
			"language": locale,
		}).
		SetResult(&result).
		Post(p.cfg.Transcription.BaseURL + "/audio/transcriptions")
	if err != nil {
		return "", fmt.Errorf("transcription request failed: %w", err)
	}
	if resp.IsError() {
		return "", &resilience.HTTPError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}
	return result.Text, nil
}

// Describe extracts text from an image via the vision-capable chat endpoint
func (p *RESTProvider) Describe(ctx context.Context, image []byte, prompt string) (string, error) {
	encoded := base64.StdEncoding.EncodeToString(image)
	body := chatCompletionRequest{
		Model: p.cfg.Vision.Model,
		Messages: []chatMessage{{
			Role: "user",
			Content: []map[string]interface{}{
				{"type": "text", "text": prompt},
				{"type": "image_url", "image_url": map[string]string{
					"url": "data:image/jpeg;base64," + encoded,
				}},
			},
		}},
	}

	var result chatCompletionResponse
	resp, err := p.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		Post(p.cfg.Vision.BaseURL + "/chat/completions")
	if err != nil {
		return "", fmt.Errorf("vision request failed: %w", err)
	}
	if resp.IsError() {
		return "", &resilience.HTTPError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("empty vision response from provider")
	}
	return result.Choices[0].Message.Content, nil
}
