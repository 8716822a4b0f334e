package provider

import (
	"fmt"
	"os"
	"time"

	"github.com/verte-zerg/termtyper/internal/generator"
)

// Provider names accepted by Config.Provider.
const (
	NameGemini     = "gemini"
	NameOpenAI     = "openai"
	NameAnthropic  = "anthropic"
	NameOpenRouter = "openrouter"
	NameOffline    = "offline"
	NameMock       = "mock"
)

// Config holds backend selection and per-backend settings.
type Config struct {
	Provider string

	Gemini     GeminiConfig
	OpenAI     OpenAIConfig
	Anthropic  AnthropicConfig
	OpenRouter OpenRouterConfig
	Offline    OfflineConfig
	Retry      RetryConfig

	// Timeout bounds one Texts.Generate call, retries included.
	Timeout time.Duration
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type AnthropicConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type OfflineConfig struct {
	WordList  string
	Lang      string
	Sentences int
	Generator *generator.Generator // nil uses a time-seeded one
}

type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig selects Gemini, as the typing prompt was written for it.
func DefaultConfig() Config {
	return Config{
		Provider:   NameGemini,
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-001"},
		Offline:    OfflineConfig{Lang: "en", Sentences: 3},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// KeyEnvVar returns the environment variable holding name's API key, or "" for
// backends without one.
func KeyEnvVar(name string) string {
	switch name {
	case NameGemini:
		return "GEMINI_API_KEY"
	case NameOpenAI:
		return "OPENAI_API_KEY"
	case NameAnthropic:
		return "ANTHROPIC_API_KEY"
	case NameOpenRouter:
		return "OPENROUTER_API_KEY"
	default:
		return ""
	}
}

// NeedsKey reports whether the selected backend requires an API key.
func (c Config) NeedsKey() bool {
	return KeyEnvVar(c.Provider) != ""
}

// APIKey returns the key configured for the selected backend.
func (c Config) APIKey() string {
	switch c.Provider {
	case NameGemini:
		return c.Gemini.APIKey
	case NameOpenAI:
		return c.OpenAI.APIKey
	case NameAnthropic:
		return c.Anthropic.APIKey
	case NameOpenRouter:
		return c.OpenRouter.APIKey
	default:
		return ""
	}
}

// SetAPIKey stores key on the selected backend.
func (c *Config) SetAPIKey(key string) {
	switch c.Provider {
	case NameGemini:
		c.Gemini.APIKey = key
	case NameOpenAI:
		c.OpenAI.APIKey = key
	case NameAnthropic:
		c.Anthropic.APIKey = key
	case NameOpenRouter:
		c.OpenRouter.APIKey = key
	}
}

// SetModel overrides the model of the selected backend. Empty is ignored.
func (c *Config) SetModel(model string) {
	if model == "" {
		return
	}
	switch c.Provider {
	case NameGemini:
		c.Gemini.Model = model
	case NameOpenAI:
		c.OpenAI.Model = model
	case NameAnthropic:
		c.Anthropic.Model = model
	case NameOpenRouter:
		c.OpenRouter.Model = model
	}
}

// SetBaseURL overrides the endpoint of backends that support one. Empty is ignored.
func (c *Config) SetBaseURL(url string) {
	if url == "" {
		return
	}
	switch c.Provider {
	case NameOpenAI:
		c.OpenAI.BaseURL = url
	case NameAnthropic:
		c.Anthropic.BaseURL = url
	case NameOpenRouter:
		c.OpenRouter.BaseURL = url
	}
}

// ProviderEnvVar overrides the configured backend; an explicit --provider flag still wins.
const ProviderEnvVar = "TERMTYPER_PROVIDER"

// ApplyEnv fills the selected backend's key from its environment variable when unset.
func (c *Config) ApplyEnv() {
	if c.APIKey() != "" {
		return
	}
	if env := KeyEnvVar(c.Provider); env != "" {
		if k := os.Getenv(env); k != "" {
			c.SetAPIKey(k)
		}
	}
}

// Validate checks the backend name and that a required key is present.
func (c Config) Validate() error {
	switch c.Provider {
	case NameGemini, NameOpenAI, NameAnthropic, NameOpenRouter:
		if c.APIKey() == "" {
			return fmt.Errorf("%s API key is required (set %s or run: termtyper key)", c.Provider, KeyEnvVar(c.Provider))
		}
	case NameOffline, NameMock:
	default:
		return fmt.Errorf("unknown provider: %q", c.Provider)
	}
	return nil
}
