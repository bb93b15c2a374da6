package llm

import (
	"fmt"
	"strings"

	"github.com/ppiankov/crosscheck/internal/model"
)

// NewProvider creates a new LLM provider based on configuration.
// An empty provider name disables AI analysis and returns nil, nil.
func NewProvider(config Config) (Provider, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "openai":
		return NewOpenAIProvider(config)

	case "anthropic", "claude":
		return NewAnthropicProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	case "":
		// No provider configured - return nil (LLM disabled)
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, anthropic, ollama)", config.Provider)
	}
}

// FromEnvironment picks a provider from the conventional API key variables
// when none is configured explicitly. OpenAI wins when both keys are set.
func FromEnvironment(cfg model.LLMConfig, getenv func(string) string) model.LLMConfig {
	if cfg.Provider != "" {
		if cfg.APIKey == "" {
			switch strings.ToLower(cfg.Provider) {
			case "openai":
				cfg.APIKey = getenv("OPENAI_API_KEY")
			case "anthropic", "claude":
				cfg.APIKey = getenv("ANTHROPIC_API_KEY")
			}
		}
		if cfg.BaseURL == "" && strings.EqualFold(cfg.Provider, "ollama") {
			cfg.BaseURL = getenv("OLLAMA_BASE_URL")
		}
		return cfg
	}

	switch {
	case cfg.APIKey != "":
		cfg.Provider = "openai"
	case getenv("OPENAI_API_KEY") != "":
		cfg.Provider = "openai"
		cfg.APIKey = getenv("OPENAI_API_KEY")
	case getenv("ANTHROPIC_API_KEY") != "":
		cfg.Provider = "anthropic"
		cfg.APIKey = getenv("ANTHROPIC_API_KEY")
	case getenv("OLLAMA_BASE_URL") != "":
		cfg.Provider = "ollama"
		cfg.BaseURL = getenv("OLLAMA_BASE_URL")
	}
	return cfg
}
