package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

const (
	providerNameOpenAI   = "openai"
	displayNameOpenAI    = "OpenAI"
	maxErrorPreviewChars = 500
	defaultOpenAIBaseURL = "https://api.openai.com/v1/"
)

// OpenAIOptions configures the OpenAI chat completions client
type OpenAIOptions struct {
	APIKey  string
	BaseURL string        // empty uses the public endpoint
	Timeout time.Duration // zero means no client-side timeout
}

// OpenAIProvider implements the Provider interface using OpenAI's Chat Completions API
type OpenAIProvider struct {
	client *openai.Client
	apiKey string
}

// NewOpenAIProvider creates a new OpenAI provider.
// SDK retries are disabled so one Generate is exactly one upstream request.
func NewOpenAIProvider(opts OpenAIOptions) *OpenAIProvider {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	clientOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
	}
	if opts.Timeout > 0 {
		clientOpts = append(clientOpts, option.WithRequestTimeout(opts.Timeout))
	}

	client := openai.NewClient(clientOpts...)
	return &OpenAIProvider{
		client: &client,
		apiKey: opts.APIKey,
	}
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return providerNameOpenAI
}

// DisplayName returns the provider name used in client-facing errors
func (p *OpenAIProvider) DisplayName() string {
	return displayNameOpenAI
}

// Generate sends one chat completion request with a system and a user message
func (p *OpenAIProvider) Generate(ctx context.Context, request *TextRequest) (*TextResponse, error) {
	if p.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	startTime := time.Now()
	log.Printf("💬 OPENAI QUESTION REQUEST STARTED (Model: %s)", request.Model)

	transaction := sentry.StartTransaction(ctx, "openai.generate")
	defer transaction.Finish()

	transaction.SetTag("model", request.Model)
	transaction.SetTag("provider", providerNameOpenAI)

	params := p.buildRequestParams(request)

	span := transaction.StartChild("openai.api_call")
	resp, err := p.client.Chat.Completions.New(transaction.Context(), params)
	span.Finish()

	if err != nil {
		log.Printf("❌ OPENAI REQUEST FAILED after %v: %v", time.Since(startTime), err)
		transaction.SetTag("success", "false")
		return nil, p.wrapError(err)
	}

	if len(resp.Choices) == 0 {
		log.Printf("❌ OPENAI RESPONSE HAD NO CHOICES after %v", time.Since(startTime))
		transaction.SetTag("success", "false")
		return nil, &UpstreamError{Provider: displayNameOpenAI, Err: ErrEmptyResponse}
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		log.Printf("❌ OPENAI RESPONSE HAD NO CONTENT after %v (finish_reason=%s)", time.Since(startTime), resp.Choices[0].FinishReason)
		transaction.SetTag("success", "false")
		return nil, &UpstreamError{Provider: displayNameOpenAI, Detail: string(resp.Choices[0].FinishReason), Err: ErrEmptyResponse}
	}

	usage := Usage{
		InputTokens:  int(resp.Usage.PromptTokens),
		OutputTokens: int(resp.Usage.CompletionTokens),
		TotalTokens:  int(resp.Usage.TotalTokens),
	}
	log.Printf("📊 USAGE: input=%d, output=%d, total=%d", usage.InputTokens, usage.OutputTokens, usage.TotalTokens)
	log.Printf("✅ OPENAI QUESTION COMPLETED in %v", time.Since(startTime))
	transaction.SetTag("success", "true")

	model := resp.Model
	if model == "" {
		model = request.Model
	}

	return &TextResponse{
		Text:  text,
		Model: model,
		Usage: usage,
	}, nil
}

func (p *OpenAIProvider) buildRequestParams(request *TextRequest) openai.ChatCompletionNewParams {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if request.SystemPrompt != "" {
		messages = append(messages, openai.SystemMessage(request.SystemPrompt))
	}
	messages = append(messages, openai.UserMessage(request.Prompt))

	params := openai.ChatCompletionNewParams{
		Model:       shared.ChatModel(request.Model),
		Messages:    messages,
		Temperature: openai.Float(request.Temperature),
	}
	if request.MaxTokens > 0 {
		params.MaxTokens = openai.Int(request.MaxTokens)
	}
	return params
}

// wrapError turns SDK and transport failures into an UpstreamError
func (p *OpenAIProvider) wrapError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		detail := apiErr.Message
		if detail == "" {
			detail = apiErr.Error()
		}
		return &UpstreamError{
			Provider:   displayNameOpenAI,
			StatusCode: apiErr.StatusCode,
			Detail:     truncate(detail, maxErrorPreviewChars),
			Err:        err,
		}
	}
	return &UpstreamError{
		Provider: displayNameOpenAI,
		Detail:   truncate(err.Error(), maxErrorPreviewChars),
		Err:      fmt.Errorf("transport: %w", err),
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
