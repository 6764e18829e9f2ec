package factory

import (
	"fmt"
	"time"

	"campus-assistant-be/pkg/llm"
	"campus-assistant-be/pkg/llm/ollama"
	"campus-assistant-be/pkg/llm/openai"
)

// ProviderConfig describes one generative backend as supplied by
// configuration: which implementation, where, and with which credentials.
type ProviderConfig struct {
	Type    string // "ollama", "openai", "huggingface"
	Model   string
	BaseURL string
	ApiKey  string
	Timeout time.Duration
}

func NewProvider(cfg ProviderConfig) (llm.Provider, error) {
	switch cfg.Type {
	case "ollama":
		return ollama.NewOllamaProvider(cfg.BaseURL, cfg.Model, cfg.Timeout), nil
	case "openai":
		return openai.NewOpenAIProvider(cfg.ApiKey, cfg.BaseURL, cfg.Model, cfg.Timeout), nil
	case "huggingface":
		// The HuggingFace router speaks the OpenAI chat-completions dialect.
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "https://router.huggingface.co/v1"
		}
		return openai.NewOpenAIProvider(cfg.ApiKey, baseURL, cfg.Model, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Type)
	}
}
