package main

import (
	"fmt"
	"net/http"

	"github.com/sandeepkv93/focuslist/internal/completion"
	"github.com/sandeepkv93/focuslist/internal/config"
)

// newCompleter builds the client the TUI talks to.
func newCompleter(cfg config.RuntimeConfig) (completion.Completer, error) {
	if cfg.Provider == config.ProviderProxy {
		return completion.NewProxyClient(cfg.ProxyURL, &http.Client{Timeout: cfg.RequestTimeout}), nil
	}
	return newUpstream(cfg)
}

// newUpstream builds a client that talks to a hosted provider directly.
// The proxy provider resolves to Yandex here since a proxy cannot forward
// to itself.
func newUpstream(cfg config.RuntimeConfig) (completion.Completer, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return completion.NewOpenAIClient(completion.OpenAIConfig{
			APIKey:       cfg.APIKey,
			BaseURL:      cfg.OpenAIBaseURL,
			Model:        cfg.OpenAIModel,
			Temperature:  cfg.Temperature,
			MaxTokens:    cfg.MaxTokens,
			SystemPrompt: cfg.SystemPrompt,
		})
	case config.ProviderYandex, config.ProviderProxy:
		client, err := completion.NewYandexClient(completion.YandexConfig{
			APIKey:       cfg.APIKey,
			Endpoint:     cfg.Endpoint,
			ModelURI:     cfg.ResolvedModelURI(),
			Temperature:  cfg.Temperature,
			MaxTokens:    cfg.MaxTokens,
			SystemPrompt: cfg.SystemPrompt,
			HTTPClient:   &http.Client{Timeout: cfg.RequestTimeout},
		})
		if err != nil {
			return nil, fmt.Errorf("yandex provider: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
