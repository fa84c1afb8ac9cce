package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Provider string

const (
	ProviderYandex Provider = "yandex"
	ProviderProxy  Provider = "proxy"
	ProviderOpenAI Provider = "openai"
)

type RuntimeConfig struct {
	FocusMinutes    int           `yaml:"focus_minutes"`
	HighlightWindow time.Duration `yaml:"highlight_window"`
	DBPath          string        `yaml:"db_path"`

	Provider       Provider      `yaml:"provider"`
	APIKey         string        `yaml:"-"`
	FolderID       string        `yaml:"folder_id"`
	ModelURI       string        `yaml:"model_uri"`
	Endpoint       string        `yaml:"endpoint"`
	OpenAIModel    string        `yaml:"openai_model"`
	OpenAIBaseURL  string        `yaml:"openai_base_url"`
	Temperature    float64       `yaml:"temperature"`
	MaxTokens      int           `yaml:"max_tokens"`
	SystemPrompt   string        `yaml:"system_prompt"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	ProxyURL       string        `yaml:"proxy_url"`

	ListenAddr      string        `yaml:"listen_addr"`
	AllowedOrigin   string        `yaml:"allowed_origin"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		FocusMinutes:    25,
		HighlightWindow: 2500 * time.Millisecond,
		DBPath:          ".focuslist.db",
		Provider:        ProviderProxy,
		Temperature:     0.6,
		MaxTokens:       150,
		RequestTimeout:  30 * time.Second,
		ProxyURL:        "http://localhost:3001/api/gpt",
		ListenAddr:      ":3001",
		AllowedOrigin:   "http://localhost:5173",
		ShutdownTimeout: 5 * time.Second,
	}
}

// Load applies defaults, then the YAML file at path (if any), then env.
func Load(path string) (RuntimeConfig, error) {
	cfg := DefaultRuntimeConfig()
	if strings.TrimSpace(path) != "" {
		fromFile, err := LoadFile(path, cfg)
		if err != nil {
			return RuntimeConfig{}, err
		}
		cfg = fromFile
	}
	cfg = RuntimeConfigFromEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return RuntimeConfig{}, err
	}
	return cfg, nil
}

func LoadFile(path string, base RuntimeConfig) (RuntimeConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return RuntimeConfig{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := base
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return RuntimeConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvInt("FOCUSLIST_FOCUS_MINUTES"); ok && v > 0 {
		cfg.FocusMinutes = v
	}
	if v, ok := getEnvDuration("FOCUSLIST_HIGHLIGHT_WINDOW"); ok && v > 0 {
		cfg.HighlightWindow = v
	}
	if v, ok := os.LookupEnv("FOCUSLIST_DB_PATH"); ok {
		cfg.DBPath = strings.TrimSpace(v)
	}
	if v := getEnvString("FOCUSLIST_PROVIDER"); v != "" {
		cfg.Provider = Provider(strings.ToLower(v))
	}
	switch cfg.Provider {
	case ProviderOpenAI:
		if v := getEnvString("OPENAI_API_KEY"); v != "" {
			cfg.APIKey = v
		}
	default:
		if v := getEnvString("YANDEX_API_KEY"); v != "" {
			cfg.APIKey = v
		}
	}
	if v := getEnvString("YANDEX_FOLDER_ID"); v != "" {
		cfg.FolderID = v
	}
	if v := getEnvString("FOCUSLIST_MODEL_URI"); v != "" {
		cfg.ModelURI = v
	}
	if v := getEnvString("FOCUSLIST_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := getEnvString("FOCUSLIST_OPENAI_MODEL"); v != "" {
		cfg.OpenAIModel = v
	}
	if v := getEnvString("FOCUSLIST_OPENAI_BASE_URL"); v != "" {
		cfg.OpenAIBaseURL = v
	}
	if v, ok := getEnvFloat("FOCUSLIST_TEMPERATURE"); ok {
		cfg.Temperature = v
	}
	if v, ok := getEnvInt("FOCUSLIST_MAX_TOKENS"); ok && v > 0 {
		cfg.MaxTokens = v
	}
	if v := getEnvString("FOCUSLIST_SYSTEM_PROMPT"); v != "" {
		cfg.SystemPrompt = v
	}
	if v, ok := getEnvDuration("FOCUSLIST_REQUEST_TIMEOUT"); ok && v > 0 {
		cfg.RequestTimeout = v
	}
	if v := getEnvString("FOCUSLIST_PROXY_URL"); v != "" {
		cfg.ProxyURL = v
	}
	if v := getEnvString("FOCUSLIST_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v, ok := os.LookupEnv("FOCUSLIST_ALLOWED_ORIGIN"); ok {
		cfg.AllowedOrigin = strings.TrimSpace(v)
	}
	if v, ok := getEnvDuration("FOCUSLIST_SHUTDOWN_TIMEOUT"); ok && v > 0 {
		cfg.ShutdownTimeout = v
	}
	return cfg
}

func (c RuntimeConfig) Validate() error {
	var errs []error
	if c.FocusMinutes <= 0 {
		errs = append(errs, fmt.Errorf("focus_minutes must be positive, got %d", c.FocusMinutes))
	}
	if c.HighlightWindow <= 0 {
		errs = append(errs, fmt.Errorf("highlight_window must be positive, got %s", c.HighlightWindow))
	}
	switch c.Provider {
	case ProviderYandex, ProviderProxy, ProviderOpenAI:
	default:
		errs = append(errs, fmt.Errorf("unknown provider %q", c.Provider))
	}
	if c.Temperature < 0 || c.Temperature > 1 {
		errs = append(errs, fmt.Errorf("temperature must be within [0,1], got %v", c.Temperature))
	}
	if c.MaxTokens <= 0 {
		errs = append(errs, fmt.Errorf("max_tokens must be positive, got %d", c.MaxTokens))
	}
	if c.Provider == ProviderProxy && strings.TrimSpace(c.ProxyURL) == "" {
		errs = append(errs, errors.New("proxy_url is required for the proxy provider"))
	}
	return errors.Join(errs...)
}

func (c RuntimeConfig) FocusDuration() time.Duration {
	return time.Duration(c.FocusMinutes) * time.Minute
}

// ResolvedModelURI prefers an explicit model URI and otherwise builds the
// yandexgpt-lite URI for the configured folder.
func (c RuntimeConfig) ResolvedModelURI() string {
	if strings.TrimSpace(c.ModelURI) != "" {
		return c.ModelURI
	}
	if strings.TrimSpace(c.FolderID) == "" {
		return ""
	}
	return fmt.Sprintf("gpt://%s/yandexgpt-lite", c.FolderID)
}

func getEnvString(name string) string {
	return strings.TrimSpace(os.Getenv(name))
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvFloat(name string) (float64, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvDuration(name string) (time.Duration, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
