package services

import (
	"github.com/Conceptual-Machines/cogito-api/internal/config"
)

const providerGemini = "gemini"

// QuestionParameters contains the sampling configuration for one question generation
type QuestionParameters struct {
	Model       string  // gpt-3.5-turbo unless overridden
	Temperature float64 // 0.7, answers vary between calls
	MaxTokens   int64   // 50, enough for one short question
}

// GetQuestionParameters returns the parameters for the configured provider
func GetQuestionParameters(cfg *config.Config) QuestionParameters {
	model := cfg.QuestionModel
	if cfg.LLMProvider == providerGemini {
		model = cfg.GeminiModel
	}
	return QuestionParameters{
		Model:       model,
		Temperature: cfg.QuestionTemperature,
		MaxTokens:   cfg.QuestionMaxTokens,
	}
}
