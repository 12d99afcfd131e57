package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultQuestionModel       = "gpt-3.5-turbo"
	defaultGeminiModel         = "gemini-2.5-flash"
	defaultQuestionTemperature = 0.7
	defaultQuestionMaxTokens   = 50
)

// Config holds the application configuration
// Note: The service is stateless - no database, sessions or auth secrets
type Config struct {
	// Environment
	Environment string
	Port        string

	// LLM provider selection ("openai" or "gemini")
	LLMProvider string

	// LLM API Keys
	OpenAIAPIKey  string        // OpenAI API key for question generation
	OpenAIBaseURL string        // Override for OpenAI-compatible endpoints (empty = api.openai.com)
	OpenAITimeout time.Duration // Upstream request timeout, zero disables it
	GeminiAPIKey  string        // Google Gemini API key
	GeminiBaseURL string        // Override for the Gemini endpoint (empty = public API)

	// Question generation parameters
	QuestionModel       string
	GeminiModel         string
	QuestionTemperature float64
	QuestionMaxTokens   int64

	// CORS
	CORSAllowedOrigins []string

	// Observability
	SentryDSN         string // Sentry DSN for error tracking
	LangfusePublicKey string // Langfuse public key
	LangfuseSecretKey string // Langfuse secret key
	LangfuseHost      string // Langfuse host URL (cloud or self-hosted)
	LangfuseEnabled   bool   // Feature flag for Langfuse
}

func Load() *Config {
	return &Config{
		Environment:         getEnv("ENVIRONMENT", "development"),
		Port:                getEnv("PORT", "8080"),
		LLMProvider:         strings.ToLower(getEnv("LLM_PROVIDER", "openai")),
		OpenAIAPIKey:        getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:       getEnv("OPENAI_BASE_URL", ""),
		OpenAITimeout:       getDuration("OPENAI_TIMEOUT", 0),
		GeminiAPIKey:        getEnv("GEMINI_API_KEY", ""),
		GeminiBaseURL:       getEnv("GEMINI_BASE_URL", ""),
		QuestionModel:       getEnv("QUESTION_MODEL", defaultQuestionModel),
		GeminiModel:         getEnv("GEMINI_MODEL", defaultGeminiModel),
		QuestionTemperature: getFloat("QUESTION_TEMPERATURE", defaultQuestionTemperature),
		QuestionMaxTokens:   getInt("QUESTION_MAX_TOKENS", defaultQuestionMaxTokens),
		CORSAllowedOrigins:  splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		SentryDSN:           getEnv("SENTRY_DSN", ""),
		LangfusePublicKey:   getEnv("LANGFUSE_PUBLIC_KEY", ""),
		LangfuseSecretKey:   getEnv("LANGFUSE_SECRET_KEY", ""),
		LangfuseHost:        getEnv("LANGFUSE_HOST", "https://cloud.langfuse.com"),
		LangfuseEnabled:     getEnv("LANGFUSE_ENABLED", "false") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("⚠️  Invalid %s=%q, using default %v", key, raw, defaultValue)
		return defaultValue
	}
	return v
}

func getInt(key string, defaultValue int64) int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		log.Printf("⚠️  Invalid %s=%q, using default %d", key, raw, defaultValue)
		return defaultValue
	}
	return v
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("⚠️  Invalid %s=%q, using default %v", key, raw, defaultValue)
		return defaultValue
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsProduction returns true when running in the production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// ActiveAPIKey returns the credential of the selected LLM provider
func (c *Config) ActiveAPIKey() string {
	if c.LLMProvider == "gemini" {
		return c.GeminiAPIKey
	}
	return c.OpenAIAPIKey
}
