package llm

import (
	"context"
	"fmt"

	"github.com/skillboost/skillboost/internal/logger"
	"github.com/skillboost/skillboost/internal/store"
)

// NewFacade creates the Provider every SkillBoost flow talks to: the
// configured primary model with a single fallback to the secondary model.
// Each model is wrapped in logging middleware so both attempts are recorded.
//
//	caller → fallback → logging → primary
//	                  ↘ logging → fallback model
func NewFacade(ctx context.Context, cfg Config, eventRepo store.EventRepo, log *logger.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	primaryModel, fallbackModel := cfg.Models()

	if cfg.Provider == "mock" {
		return WithFallback(NewMockProviderFor(primaryModel), NewMockProviderFor(fallbackModel), log), nil
	}

	primary, err := newModelProvider(ctx, cfg, primaryModel)
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}
	fallback, err := newModelProvider(ctx, cfg, fallbackModel)
	if err != nil {
		return nil, fmt.Errorf("initializing %s fallback provider: %w", cfg.Provider, err)
	}

	return WithFallback(
		WithLogging(primary, cfg.Provider, eventRepo, log),
		WithLogging(fallback, cfg.Provider, eventRepo, log),
		log,
	), nil
}

// newModelProvider builds a bare vendor provider bound to one model.
func newModelProvider(ctx context.Context, cfg Config, model string) (Provider, error) {
	switch cfg.Provider {
	case "gemini":
		return NewGeminiProvider(ctx, cfg.Gemini, model)
	case "openai":
		return NewOpenAIProvider(cfg.OpenAI, model)
	case "anthropic":
		return NewAnthropicProvider(cfg.Anthropic, model)
	case "openrouter":
		return NewOpenRouterProvider(cfg.OpenRouter, model)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
}
