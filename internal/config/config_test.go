package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultRuntimeConfigIsValid(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.FocusDuration() != 25*time.Minute {
		t.Fatalf("expected 25m focus, got %s", cfg.FocusDuration())
	}
	if cfg.HighlightWindow != 2500*time.Millisecond {
		t.Fatalf("expected 2.5s highlight window, got %s", cfg.HighlightWindow)
	}
}

func TestRuntimeConfigFromEnv(t *testing.T) {
	t.Setenv("FOCUSLIST_FOCUS_MINUTES", "10")
	t.Setenv("FOCUSLIST_PROVIDER", "YANDEX")
	t.Setenv("YANDEX_API_KEY", "secret")
	t.Setenv("YANDEX_FOLDER_ID", "b1g")
	t.Setenv("FOCUSLIST_TEMPERATURE", "0.3")
	t.Setenv("FOCUSLIST_REQUEST_TIMEOUT", "5s")
	t.Setenv("FOCUSLIST_DB_PATH", "")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.FocusMinutes != 10 {
		t.Fatalf("expected focus minutes 10, got %d", cfg.FocusMinutes)
	}
	if cfg.Provider != ProviderYandex {
		t.Fatalf("expected yandex provider, got %q", cfg.Provider)
	}
	if cfg.APIKey != "secret" {
		t.Fatalf("expected api key from env, got %q", cfg.APIKey)
	}
	if got := cfg.ResolvedModelURI(); got != "gpt://b1g/yandexgpt-lite" {
		t.Fatalf("unexpected model uri %q", got)
	}
	if cfg.Temperature != 0.3 {
		t.Fatalf("expected temperature 0.3, got %v", cfg.Temperature)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Fatalf("expected 5s timeout, got %s", cfg.RequestTimeout)
	}
	if cfg.DBPath != "" {
		t.Fatalf("expected persistence disabled, got %q", cfg.DBPath)
	}
}

func TestRuntimeConfigFromEnvIgnoresGarbage(t *testing.T) {
	t.Setenv("FOCUSLIST_FOCUS_MINUTES", "soon")
	t.Setenv("FOCUSLIST_MAX_TOKENS", "-4")
	t.Setenv("FOCUSLIST_HIGHLIGHT_WINDOW", "later")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	def := DefaultRuntimeConfig()
	if cfg.FocusMinutes != def.FocusMinutes || cfg.MaxTokens != def.MaxTokens || cfg.HighlightWindow != def.HighlightWindow {
		t.Fatalf("expected defaults to survive bad env, got %+v", cfg)
	}
}

func TestOpenAIProviderReadsOpenAIKey(t *testing.T) {
	t.Setenv("FOCUSLIST_PROVIDER", "openai")
	t.Setenv("YANDEX_API_KEY", "yandex")
	t.Setenv("OPENAI_API_KEY", "openai")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.APIKey != "openai" {
		t.Fatalf("expected openai key, got %q", cfg.APIKey)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "focuslist.yaml")
	body := "focus_minutes: 15\nprovider: yandex\nmodel_uri: gpt://folder/yandexgpt\nhighlight_window: 1s\nlisten_addr: \":4000\"\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("FOCUSLIST_LISTEN_ADDR", ":5000")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.FocusMinutes != 15 {
		t.Fatalf("expected file focus minutes, got %d", cfg.FocusMinutes)
	}
	if cfg.HighlightWindow != time.Second {
		t.Fatalf("expected 1s highlight window, got %s", cfg.HighlightWindow)
	}
	if cfg.ResolvedModelURI() != "gpt://folder/yandexgpt" {
		t.Fatalf("expected explicit model uri, got %q", cfg.ResolvedModelURI())
	}
	if cfg.ListenAddr != ":5000" {
		t.Fatalf("expected env to override file, got %q", cfg.ListenAddr)
	}
	if cfg.MaxTokens != 150 {
		t.Fatalf("expected default max tokens to survive, got %d", cfg.MaxTokens)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RuntimeConfig)
	}{
		{name: "zero focus", mutate: func(c *RuntimeConfig) { c.FocusMinutes = 0 }},
		{name: "unknown provider", mutate: func(c *RuntimeConfig) { c.Provider = "bard" }},
		{name: "hot temperature", mutate: func(c *RuntimeConfig) { c.Temperature = 1.5 }},
		{name: "no tokens", mutate: func(c *RuntimeConfig) { c.MaxTokens = 0 }},
		{name: "proxy without url", mutate: func(c *RuntimeConfig) { c.ProxyURL = " " }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultRuntimeConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
