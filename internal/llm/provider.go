package llm

import (
	"context"
)

// Provider defines the interface for LLM providers used for question generation.
// Implementations make exactly one upstream call per Generate and never retry.
type Provider interface {
	// Generate sends a single prompt and returns the generated text
	Generate(ctx context.Context, request *TextRequest) (*TextResponse, error)

	// Name returns the provider name (e.g., "openai", "gemini")
	Name() string

	// DisplayName returns the human readable provider name used in error messages
	DisplayName() string
}

// TextRequest contains all parameters needed for one generation
type TextRequest struct {
	Model        string
	SystemPrompt string // Optional system instruction
	Prompt       string
	Temperature  float64
	MaxTokens    int64
}

// Usage holds token counts reported by the upstream service
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// TextResponse contains the result from the LLM
type TextResponse struct {
	Text  string `json:"text"`
	Model string `json:"model"`
	Usage Usage  `json:"usage"`
}
