package llm

import (
	"fmt"
	"os"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "gemini", "openai", "anthropic", "openrouter", "mock"
	Provider string

	Gemini     GeminiConfig
	OpenAI     OpenAIConfig
	Anthropic  AnthropicConfig
	OpenRouter OpenRouterConfig
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey        string
	Model         string // Default: "gemini-3-flash-preview"
	FallbackModel string // Default: "gemini-2.5-flash"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey        string
	Model         string // Default: "gpt-4o-mini"
	FallbackModel string // Default: "gpt-4.1-mini"
	BaseURL       string // Optional. Override for compatible APIs.
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey        string
	Model         string // Default: "claude-haiku"
	FallbackModel string // Default: "claude-sonnet"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey        string
	Model         string // Default: "google/gemini-2.5-flash"
	FallbackModel string // Default: "google/gemini-2.0-flash-001"
	BaseURL       string // Default: "https://openrouter.ai/api/v1"
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "gemini",
		Gemini: GeminiConfig{
			Model:         "gemini-3-flash-preview",
			FallbackModel: "gemini-2.5-flash",
		},
		OpenAI: OpenAIConfig{
			Model:         "gpt-4o-mini",
			FallbackModel: "gpt-4.1-mini",
		},
		Anthropic: AnthropicConfig{
			Model:         "claude-haiku",
			FallbackModel: "claude-sonnet",
		},
		OpenRouter: OpenRouterConfig{
			Model:         "google/gemini-2.5-flash",
			FallbackModel: "google/gemini-2.0-flash-001",
		},
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values. When SKILLBOOST_LLM_PROVIDER is unset the
// standard vendor key variables are checked via DiscoverConfig.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if discovered, ok := DiscoverConfig(); ok {
		cfg = discovered
	}

	if p := os.Getenv("SKILLBOOST_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	setFromEnv(&cfg.Gemini.APIKey, "SKILLBOOST_GEMINI_API_KEY")
	setFromEnv(&cfg.Gemini.Model, "SKILLBOOST_GEMINI_MODEL")
	setFromEnv(&cfg.Gemini.FallbackModel, "SKILLBOOST_GEMINI_FALLBACK_MODEL")

	setFromEnv(&cfg.OpenAI.APIKey, "SKILLBOOST_OPENAI_API_KEY")
	setFromEnv(&cfg.OpenAI.Model, "SKILLBOOST_OPENAI_MODEL")
	setFromEnv(&cfg.OpenAI.FallbackModel, "SKILLBOOST_OPENAI_FALLBACK_MODEL")
	setFromEnv(&cfg.OpenAI.BaseURL, "SKILLBOOST_OPENAI_BASE_URL")

	setFromEnv(&cfg.Anthropic.APIKey, "SKILLBOOST_ANTHROPIC_API_KEY")
	setFromEnv(&cfg.Anthropic.Model, "SKILLBOOST_ANTHROPIC_MODEL")
	setFromEnv(&cfg.Anthropic.FallbackModel, "SKILLBOOST_ANTHROPIC_FALLBACK_MODEL")

	setFromEnv(&cfg.OpenRouter.APIKey, "SKILLBOOST_OPENROUTER_API_KEY")
	setFromEnv(&cfg.OpenRouter.Model, "SKILLBOOST_OPENROUTER_MODEL")
	setFromEnv(&cfg.OpenRouter.FallbackModel, "SKILLBOOST_OPENROUTER_FALLBACK_MODEL")
	setFromEnv(&cfg.OpenRouter.BaseURL, "SKILLBOOST_OPENROUTER_BASE_URL")

	return cfg
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// DiscoverConfig checks standard API key env vars in priority order
// (Gemini → OpenAI → Anthropic → OpenRouter) and returns a Config for the
// first provider whose key is found. Returns (Config{}, false) if none found.
// The Gemini lookup also accepts the key names used by the web client build.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	for _, name := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY", "VITE_GOOGLE_API_KEY"} {
		if k := os.Getenv(name); k != "" {
			cfg.Provider = "gemini"
			cfg.Gemini.APIKey = k
			return cfg, true
		}
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// Models returns the primary and fallback model identifiers for the
// selected provider.
func (c Config) Models() (primary, fallback string) {
	switch c.Provider {
	case "gemini":
		return c.Gemini.Model, c.Gemini.FallbackModel
	case "openai":
		return c.OpenAI.Model, c.OpenAI.FallbackModel
	case "anthropic":
		return c.Anthropic.Model, c.Anthropic.FallbackModel
	case "openrouter":
		return c.OpenRouter.Model, c.OpenRouter.FallbackModel
	default:
		return "mock", "mock-fallback"
	}
}

// Validate checks that the selected provider has its required API key set
// and both model identifiers configured.
func (c Config) Validate() error {
	switch c.Provider {
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("SKILLBOOST_GEMINI_API_KEY (or GEMINI_API_KEY) is required for the gemini provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("SKILLBOOST_OPENAI_API_KEY is required for the openai provider")
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("SKILLBOOST_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("SKILLBOOST_OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}

	primary, fallback := c.Models()
	if primary == "" || fallback == "" {
		return fmt.Errorf("both a primary and a fallback model are required for the %s provider", c.Provider)
	}
	return nil
}
