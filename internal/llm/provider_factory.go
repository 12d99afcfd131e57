package llm

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// ProviderFactory creates providers based on an explicit provider choice
type ProviderFactory struct {
	openaiAPIKey  string
	openaiBaseURL string
	openaiTimeout time.Duration
	geminiAPIKey  string
	geminiBaseURL string
}

// FactoryOptions holds the credentials and endpoints for every provider
type FactoryOptions struct {
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAITimeout time.Duration
	GeminiAPIKey  string
	GeminiBaseURL string
}

// NewProviderFactory creates a new provider factory
func NewProviderFactory(opts FactoryOptions) *ProviderFactory {
	return &ProviderFactory{
		openaiAPIKey:  opts.OpenAIAPIKey,
		openaiBaseURL: opts.OpenAIBaseURL,
		openaiTimeout: opts.OpenAITimeout,
		geminiAPIKey:  opts.GeminiAPIKey,
		geminiBaseURL: opts.GeminiBaseURL,
	}
}

// GetProvider returns the provider with the given name. Empty defaults to openai.
// A missing key is not an error here; the provider reports it on Generate.
func (f *ProviderFactory) GetProvider(ctx context.Context, providerName string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(providerName)) {
	case "", providerNameOpenAI:
		return NewOpenAIProvider(OpenAIOptions{
			APIKey:  f.openaiAPIKey,
			BaseURL: f.openaiBaseURL,
			Timeout: f.openaiTimeout,
		}), nil

	case providerNameGemini:
		return NewGeminiProvider(ctx, GeminiOptions{
			APIKey:  f.geminiAPIKey,
			BaseURL: f.geminiBaseURL,
		})

	default:
		return nil, fmt.Errorf("unknown provider: %s (allowed: openai, gemini)", providerName)
	}
}
