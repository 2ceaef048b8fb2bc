package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Knowledge KnowledgeConfig
	LLM       LLMConfig
	Export    ExportConfig
	Events    EventsConfig
	Otel      OtelConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	EventLogFilePath   string
	CorsAllowedOrigins string
	BodyLimitMB        int
	PublicDir          string
}

type KnowledgeConfig struct {
	Dir      string
	MaxChars int
}

type LLMConfig struct {
	Provider        string // "gemini", "openai", "anthropic", "ollama" or "mock"
	Model           string
	MaxTokens       int
	GoogleAPIKey    string
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	AnthropicAPIKey string
	OllamaBaseURL   string
	ChatTimeout     time.Duration
}

type ExportConfig struct {
	Timeout       time.Duration
	ChromePath    string
	MathCSSPath   string
	WatermarkPath string
}

type EventsConfig struct {
	Topic   string
	NatsURL string // empty disables mirroring
}

type OtelConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			EventLogFilePath:   getEnv("EVENT_LOG_FILE_PATH", "logs/events.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			BodyLimitMB:        getEnvAsInt("BODY_LIMIT_MB", 10),
			PublicDir:          getEnv("PUBLIC_DIR", "./public"),
		},
		Knowledge: KnowledgeConfig{
			Dir:      getEnv("KNOWLEDGE_DIR", "./public/knowledge"),
			MaxChars: getEnvAsInt("EXCERPT_MAX_CHARS", 8000),
		},
		LLM: LLMConfig{
			Provider:        getEnv("LLM_PROVIDER", "gemini"),
			Model:           getEnv("LLM_MODEL", ""), // empty picks the provider default
			MaxTokens:       getEnvAsInt("LLM_MAX_TOKENS", 0),
			GoogleAPIKey:    getEnv("GOOGLE_GENERATIVE_AI_API_KEY", ""),
			OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL:   getEnv("OPENAI_BASE_URL", ""),
			AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
			OllamaBaseURL:   getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			ChatTimeout:     getEnvAsDuration("CHAT_TIMEOUT", 30*time.Second),
		},
		Export: ExportConfig{
			Timeout:       getEnvAsDuration("EXPORT_TIMEOUT", 60*time.Second),
			ChromePath:    getEnv("CHROME_PATH", ""),
			MathCSSPath:   getEnv("MATH_CSS_PATH", ""),
			WatermarkPath: getEnv("WATERMARK_PATH", "/bg.png"),
		},
		Events: EventsConfig{
			Topic:   getEnv("NOTE_EVENTS_TOPIC", "NOTE_LIFECYCLE"),
			NatsURL: getEnv("NATS_URL", ""),
		},
		Otel: OtelConfig{
			Enabled:     getEnv("OTEL_ENABLED", "false") == "true",
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "lesson-notes-backend"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go durations ("45s") or a bare number of seconds.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	if d, err := time.ParseDuration(strValue); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(strValue); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
