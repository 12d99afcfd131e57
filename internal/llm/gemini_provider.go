package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"google.golang.org/genai"
)

const (
	providerNameGemini = "gemini"
	displayNameGemini  = "Gemini"
)

// GeminiOptions configures the Gemini client
type GeminiOptions struct {
	APIKey  string
	BaseURL string // empty uses the public endpoint
}

// GeminiProvider implements the Provider interface using Google's Gemini API
type GeminiProvider struct {
	client *genai.Client
}

// NewGeminiProvider creates a new Gemini provider.
// An empty key yields a provider whose Generate returns ErrMissingAPIKey.
func NewGeminiProvider(ctx context.Context, opts GeminiOptions) (*GeminiProvider, error) {
	if opts.APIKey == "" {
		return &GeminiProvider{}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      opts.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: opts.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{
		client: client,
	}, nil
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return providerNameGemini
}

// DisplayName returns the provider name used in client-facing errors
func (p *GeminiProvider) DisplayName() string {
	return displayNameGemini
}

// Generate sends one GenerateContent request
func (p *GeminiProvider) Generate(ctx context.Context, request *TextRequest) (*TextResponse, error) {
	if p.client == nil {
		return nil, ErrMissingAPIKey
	}

	startTime := time.Now()
	log.Printf("💬 GEMINI QUESTION REQUEST STARTED (Model: %s)", request.Model)

	transaction := sentry.StartTransaction(ctx, "gemini.generate")
	defer transaction.Finish()

	transaction.SetTag("model", request.Model)
	transaction.SetTag("provider", providerNameGemini)

	span := transaction.StartChild("gemini.api_call")
	result, err := p.client.Models.GenerateContent(
		transaction.Context(),
		request.Model,
		genai.Text(request.Prompt),
		p.buildConfig(request),
	)
	span.Finish()

	if err != nil {
		log.Printf("❌ GEMINI REQUEST FAILED after %v: %v", time.Since(startTime), err)
		transaction.SetTag("success", "false")
		return nil, wrapGeminiError(err)
	}

	if result == nil || len(result.Candidates) == 0 {
		log.Printf("❌ GEMINI RESPONSE HAD NO CANDIDATES after %v", time.Since(startTime))
		transaction.SetTag("success", "false")
		return nil, &UpstreamError{Provider: displayNameGemini, Err: ErrEmptyResponse}
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		log.Printf("❌ GEMINI RESPONSE HAD NO TEXT after %v", time.Since(startTime))
		transaction.SetTag("success", "false")
		return nil, &UpstreamError{Provider: displayNameGemini, Err: ErrEmptyResponse}
	}

	var usage Usage
	if result.UsageMetadata != nil {
		usage = Usage{
			InputTokens:  int(result.UsageMetadata.PromptTokenCount),
			OutputTokens: int(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:  int(result.UsageMetadata.TotalTokenCount),
		}
	}
	log.Printf("📊 USAGE: input=%d, output=%d, total=%d", usage.InputTokens, usage.OutputTokens, usage.TotalTokens)
	log.Printf("✅ GEMINI QUESTION COMPLETED in %v", time.Since(startTime))
	transaction.SetTag("success", "true")

	return &TextResponse{
		Text:  text,
		Model: request.Model,
		Usage: usage,
	}, nil
}

func (p *GeminiProvider) buildConfig(request *TextRequest) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(request.Temperature)),
	}
	if request.MaxTokens > 0 {
		config.MaxOutputTokens = int32(request.MaxTokens)
	}
	if request.SystemPrompt != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: request.SystemPrompt}},
		}
	}
	return config
}

func wrapGeminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &UpstreamError{
			Provider:   displayNameGemini,
			StatusCode: apiErr.Code,
			Detail:     truncate(apiErr.Message, maxErrorPreviewChars),
			Err:        err,
		}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return &UpstreamError{
			Provider:   displayNameGemini,
			StatusCode: apiErrPtr.Code,
			Detail:     truncate(apiErrPtr.Message, maxErrorPreviewChars),
			Err:        err,
		}
	}
	return &UpstreamError{
		Provider: displayNameGemini,
		Detail:   truncate(err.Error(), maxErrorPreviewChars),
		Err:      fmt.Errorf("transport: %w", err),
	}
}
