package factory

import (
	"fmt"

	"talk-to-legends-be/pkg/llm"
	"talk-to-legends-be/pkg/llm/huggingface"
	"talk-to-legends-be/pkg/llm/ollama"
	"talk-to-legends-be/pkg/llm/openai"
)

// ProviderConfig describes one completion provider.
type ProviderConfig struct {
	Provider    string // "huggingface", "openai", "ollama" or "" for none
	Model       string
	BaseURL     string
	APIKey      string
	MaxTokens   int
	Temperature float64
	TopP        float64
}

// NewLLMProvider returns nil, nil when no provider is configured.
func NewLLMProvider(cfg ProviderConfig) (llm.LLMProvider, error) {
	defaults := llm.Options{
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
		TopP:        cfg.TopP,
	}

	switch cfg.Provider {
	case "":
		return nil, nil
	case "huggingface":
		if cfg.Model == "" {
			return nil, fmt.Errorf("huggingface provider requires a model")
		}
		return huggingface.NewHuggingFaceProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, defaults), nil
	case "openai":
		return openai.NewOpenAIProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, defaults), nil
	case "ollama":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, cfg.Model, defaults), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
