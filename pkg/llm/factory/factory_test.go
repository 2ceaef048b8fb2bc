package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		cfg     Config
		model   string
		wantErr bool
	}{
		{"mock", Config{Provider: "mock"}, "mock", false},
		{"ollama default model", Config{Provider: "ollama"}, "llama3", false},
		{"openai explicit model", Config{Provider: "OpenAI", OpenAIAPIKey: "k", Model: "gpt-4o"}, "gpt-4o", false},
		{"anthropic", Config{Provider: "anthropic", AnthropicAPIKey: "k"}, "claude-sonnet-4-20250514", false},
		{"openai without key", Config{Provider: "openai"}, "", true},
		{"gemini default model", Config{Provider: "gemini", GoogleAPIKey: "k"}, "gemini-2.5-flash", false},
		{"google alias default model", Config{Provider: "Google", GoogleAPIKey: "k"}, "gemini-2.5-flash", false},
		{"gemini without key", Config{Provider: "gemini"}, "", true},
		{"unknown", Config{Provider: "bard"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewLLMProvider(ctx, tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.model, p.ModelID())
		})
	}
}
