package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv removes keys for the duration of the test and restores them after.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		if prev, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { _ = os.Setenv(key, prev) })
		}
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t, "APP_PORT", "KNOWLEDGE_DIR", "EXCERPT_MAX_CHARS", "LLM_PROVIDER", "LLM_MODEL",
		"CHAT_TIMEOUT", "EXPORT_TIMEOUT", "WATERMARK_PATH", "NATS_URL", "OTEL_ENABLED", "GO_ENV")

	cfg := Load()

	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, "./public/knowledge", cfg.Knowledge.Dir)
	assert.Equal(t, 8000, cfg.Knowledge.MaxChars)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Empty(t, cfg.LLM.Model)
	assert.Equal(t, 30*time.Second, cfg.LLM.ChatTimeout)
	assert.Equal(t, 60*time.Second, cfg.Export.Timeout)
	assert.Equal(t, "/bg.png", cfg.Export.WatermarkPath)
	assert.Empty(t, cfg.Events.NatsURL)
	assert.False(t, cfg.Otel.Enabled)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("EXCERPT_MAX_CHARS", "4000")
	t.Setenv("LLM_PROVIDER", "ollama")
	t.Setenv("EXPORT_TIMEOUT", "90")
	t.Setenv("CHAT_TIMEOUT", "2m")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("GO_ENV", "production")

	cfg := Load()

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 4000, cfg.Knowledge.MaxChars)
	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, 90*time.Second, cfg.Export.Timeout)
	assert.Equal(t, 2*time.Minute, cfg.LLM.ChatTimeout)
	assert.True(t, cfg.Otel.Enabled)
	assert.True(t, cfg.IsProduction())
}

func TestGetEnvAsDuration_InvalidFallsBack(t *testing.T) {
	t.Setenv("SOME_TIMEOUT", "soon")
	assert.Equal(t, time.Second, getEnvAsDuration("SOME_TIMEOUT", time.Second))

	t.Setenv("SOME_TIMEOUT", "-5s")
	assert.Equal(t, time.Second, getEnvAsDuration("SOME_TIMEOUT", time.Second))
}
