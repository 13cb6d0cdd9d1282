package llm

import (
	"fmt"
	"net/http"
	"time"
)

// ProviderType untuk factory
type ProviderType string

const (
	ProviderOpenAI   ProviderType = "openai"
	ProviderGemini   ProviderType = "gemini"
	ProviderGroq     ProviderType = "groq"
	ProviderDeepSeek ProviderType = "deepseek"
	ProviderClaude   ProviderType = "claude"
)

// OpenAI-compatible endpoints
const (
	groqBaseURL     = "https://api.groq.com/openai/v1"
	deepSeekBaseURL = "https://api.deepseek.com/v1"
	geminiBaseURL   = "https://generativelanguage.googleapis.com/v1beta/openai/"
)

// ProviderConfig untuk create provider
type ProviderConfig struct {
	Type ProviderType

	// API Keys
	OpenAIKey   string
	GeminiKey   string
	GroqKey     string
	DeepSeekKey string
	ClaudeKey   string

	// Model configs
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration

	// BaseURL overrides the provider endpoint (tests, proxies).
	BaseURL string
}

// Key returns the process-wide credential for the configured provider.
func (c ProviderConfig) Key() string {
	switch c.Type {
	case ProviderOpenAI:
		return c.OpenAIKey
	case ProviderGemini:
		return c.GeminiKey
	case ProviderGroq:
		return c.GroqKey
	case ProviderDeepSeek:
		return c.DeepSeekKey
	case ProviderClaude:
		return c.ClaudeKey
	}
	return ""
}

// DefaultModel returns the model used when LLM_MODEL is unset.
func DefaultModel(t ProviderType) string {
	switch t {
	case ProviderGemini:
		return "gemini-2.5-flash"
	case ProviderGroq:
		return "llama-3.1-8b-instant"
	case ProviderDeepSeek:
		return "deepseek-chat"
	case ProviderClaude:
		return "claude-3-5-sonnet-20241022"
	default:
		return "gpt-4o-mini"
	}
}

// NewGateway builds a gateway for cfg.Type authenticated with apiKey.
func NewGateway(cfg ProviderConfig, apiKey string) (Gateway, error) {
	if apiKey == "" {
		return nil, ErrConfigMissing
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel(cfg.Type)
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.7
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 1024
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	httpClient := &http.Client{Timeout: cfg.Timeout}

	switch cfg.Type {
	case ProviderOpenAI:
		return NewOpenAIGateway("OpenAI", apiKey, cfg.BaseURL, cfg, httpClient), nil
	case ProviderGroq:
		return NewOpenAIGateway("Groq", apiKey, orDefault(cfg.BaseURL, groqBaseURL), cfg, httpClient), nil
	case ProviderDeepSeek:
		return NewOpenAIGateway("DeepSeek", apiKey, orDefault(cfg.BaseURL, deepSeekBaseURL), cfg, httpClient), nil
	case ProviderGemini:
		return NewOpenAIGateway("Google Gemini", apiKey, orDefault(cfg.BaseURL, geminiBaseURL), cfg, httpClient), nil
	case ProviderClaude:
		return NewAnthropicGateway(apiKey, cfg, httpClient), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider type: %s", cfg.Type)
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
