package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const (
	DefaultEndpoint    = "https://llm.api.cloud.yandex.net/foundationModels/v1/completion"
	DefaultTemperature = 0.6
	DefaultMaxTokens   = 150

	replyPath = "result.alternatives.0.message.text"
)

const DefaultSystemPrompt = "You are an assistant helping a person with ADHD get through their tasks. " +
	"Keep answers short and practical. At most 5 steps, one line per step. " +
	"If the list is long, continue it in a separate message."

type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type Options struct {
	Stream      bool    `json:"stream"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"maxTokens"`
}

type Request struct {
	ModelURI          string    `json:"modelUri"`
	CompletionOptions Options   `json:"completionOptions"`
	Messages          []Message `json:"messages"`
}

type YandexConfig struct {
	APIKey       string
	Endpoint     string
	ModelURI     string
	Temperature  float64
	MaxTokens    int
	SystemPrompt string
	HTTPClient   *http.Client
}

// YandexClient calls the Yandex Foundation Models completion endpoint.
type YandexClient struct {
	cfg    YandexConfig
	client *http.Client
}

func NewYandexClient(cfg YandexConfig) (*YandexClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if strings.TrimSpace(cfg.ModelURI) == "" {
		return nil, errors.New("completion: model uri is required")
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = DefaultTemperature
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = DefaultSystemPrompt
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &YandexClient{cfg: cfg, client: client}, nil
}

// NewRequest wraps a single user message with the configured system prompt.
func (c *YandexClient) NewRequest(text string) Request {
	return Request{
		ModelURI: c.cfg.ModelURI,
		CompletionOptions: Options{
			Stream:      false,
			Temperature: c.cfg.Temperature,
			MaxTokens:   c.cfg.MaxTokens,
		},
		Messages: []Message{
			{Role: "system", Text: c.cfg.SystemPrompt},
			{Role: "user", Text: text},
		},
	}
}

func (c *YandexClient) Complete(ctx context.Context, text string) (string, error) {
	payload, err := json.Marshal(c.NewRequest(text))
	if err != nil {
		return "", fmt.Errorf("encode completion request: %w", err)
	}
	raw, err := c.post(ctx, payload)
	if err != nil {
		return "", err
	}
	return ReplyText(raw)
}

// ForwardRaw sends a caller-built completion payload and returns the provider
// body untouched. A missing modelUri is filled from the client config.
func (c *YandexClient) ForwardRaw(ctx context.Context, payload []byte) ([]byte, error) {
	if !gjson.ValidBytes(payload) {
		return nil, errors.New("completion: payload is not valid json")
	}
	if !gjson.GetBytes(payload, "modelUri").Exists() {
		patched, err := sjson.SetBytes(payload, "modelUri", c.cfg.ModelURI)
		if err != nil {
			return nil, fmt.Errorf("set default model uri: %w", err)
		}
		payload = patched
	}
	return c.post(ctx, payload)
}

// ReplyText extracts the first alternative's text from a provider body.
func ReplyText(raw []byte) (string, error) {
	if !gjson.ValidBytes(raw) {
		return "", &NetworkError{Err: errors.New("response is not valid json")}
	}
	reply := gjson.GetBytes(raw, replyPath)
	if !reply.Exists() || strings.TrimSpace(reply.String()) == "" {
		return "", ErrEmptyReply
	}
	return reply.String(), nil
}

func (c *YandexClient) post(ctx context.Context, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Api-Key "+c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ProviderError{Status: resp.StatusCode, Body: string(raw)}
	}
	return raw, nil
}
