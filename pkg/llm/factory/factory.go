package factory

import (
	"context"
	"fmt"
	"strings"

	"lesson-notes-be/pkg/llm"
	"lesson-notes-be/pkg/llm/anthropic"
	"lesson-notes-be/pkg/llm/gemini"
	"lesson-notes-be/pkg/llm/ollama"
	"lesson-notes-be/pkg/llm/openai"
)

// Config selects and configures the completion backend.
type Config struct {
	Provider        string
	Model           string
	MaxTokens       int
	GoogleAPIKey    string
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	AnthropicAPIKey string
	OllamaBaseURL   string
}

var defaultModels = map[string]string{
	"gemini":    "gemini-2.5-flash",
	"openai":    "gpt-4o-mini",
	"anthropic": "claude-sonnet-4-20250514",
	"ollama":    "llama3",
}

func NewLLMProvider(ctx context.Context, cfg Config) (llm.LLMProvider, error) {
	providerType := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if providerType == "google" {
		providerType = "gemini"
	}
	model := cfg.Model
	if model == "" {
		model = defaultModels[providerType]
	}

	switch providerType {
	case "gemini":
		return gemini.NewGeminiProvider(ctx, cfg.GoogleAPIKey, model, cfg.MaxTokens)
	case "openai":
		return openai.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, model, cfg.MaxTokens)
	case "anthropic":
		return anthropic.NewAnthropicProvider(cfg.AnthropicAPIKey, model, cfg.MaxTokens)
	case "ollama":
		baseURL := cfg.OllamaBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, model, cfg.MaxTokens), nil
	case "mock":
		return llm.NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
