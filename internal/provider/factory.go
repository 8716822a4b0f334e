package provider

import (
	"context"
	"fmt"
	"io"
)

// NewProvider builds the configured backend wrapped as caller -> retry -> logging -> backend.
// logw receives one line per backend call; nil disables it.
func NewProvider(ctx context.Context, cfg Config, logw io.Writer) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error
	switch cfg.Provider {
	case NameGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case NameOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case NameAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case NameOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case NameOffline:
		// Local generation cannot fail transiently.
		offline, err := NewOfflineProvider(cfg.Offline)
		if err != nil {
			return nil, fmt.Errorf("initializing offline provider: %w", err)
		}
		return offline, nil
	case NameMock:
		return NewMockProvider(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}
	return WithRetry(WithLogging(base, logw), cfg.Retry), nil
}
