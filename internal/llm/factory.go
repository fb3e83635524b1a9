package llm

import (
	"context"
	"fmt"
	"os"

	"eqscout/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with event
// logging. Retry policy is left to the caller: the report pipeline runs
// its own bounded loop, one-shot callers wrap with WithRetry.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithLogging(base, eventRepo), nil
}

// NewProviderFromEnv builds a provider from EQSCOUT_* configuration. When
// no provider is explicitly selected and the configured default lacks a
// key, standard API key env vars are probed instead.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo) (Provider, error) {
	cfg := ConfigFromEnv()

	if os.Getenv("EQSCOUT_LLM_PROVIDER") == "" {
		if err := cfg.Validate(); err != nil {
			if discovered, ok := DiscoverConfig(); ok {
				cfg = discovered
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return NewProvider(ctx, cfg, eventRepo)
}
