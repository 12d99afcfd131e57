package services

import (
	"context"
	"errors"
	"time"

	"github.com/Conceptual-Machines/cogito-api/internal/llm"
	"github.com/Conceptual-Machines/cogito-api/internal/logger"
	"github.com/Conceptual-Machines/cogito-api/internal/metrics"
	"github.com/Conceptual-Machines/cogito-api/internal/models"
	"github.com/Conceptual-Machines/cogito-api/internal/observability"
	"github.com/Conceptual-Machines/cogito-api/internal/prompt"
)

// QuestionService generates one deep-talk question per call through an LLM provider
type QuestionService struct {
	provider llm.Provider
	apiKey   string
	params   QuestionParameters
	prompts  *prompt.Builder
	tracer   *observability.LangfuseClient
	recorder *metrics.Recorder
}

// NewQuestionService creates a question service. apiKey is the credential of
// provider; an empty key makes every Generate fail with a ConfigurationError.
// A nil tracer falls back to the global Langfuse client; recorder may be nil.
func NewQuestionService(
	provider llm.Provider,
	apiKey string,
	params QuestionParameters,
	tracer *observability.LangfuseClient,
	recorder *metrics.Recorder,
) *QuestionService {
	if tracer == nil {
		tracer = observability.GetClient()
	}
	return &QuestionService{
		provider: provider,
		apiKey:   apiKey,
		params:   params,
		prompts:  prompt.NewPromptBuilder(),
		tracer:   tracer,
		recorder: recorder,
	}
}

// Configured reports whether a credential is present
func (s *QuestionService) Configured() bool {
	return s.apiKey != ""
}

// ProviderName returns the provider name, e.g. "openai"
func (s *QuestionService) ProviderName() string {
	return s.provider.Name()
}

// ProviderDisplayName returns the human-readable provider name, e.g. "OpenAI"
func (s *QuestionService) ProviderDisplayName() string {
	return s.provider.DisplayName()
}

// Model returns the configured model
func (s *QuestionService) Model() string {
	return s.params.Model
}

// Generate builds the prompt for req and makes exactly one upstream call.
// Nothing is cached; identical requests may yield different questions.
func (s *QuestionService) Generate(ctx context.Context, req models.GenerationRequest) (*models.GenerationResult, error) {
	lang := req.Language
	if lang == "" {
		lang = prompt.DefaultLanguage
	}

	record := metrics.Generation{
		Provider: s.provider.Name(),
		Model:    s.params.Model,
		Category: req.Category,
		Language: lang,
	}

	if !s.Configured() {
		record.Outcome = metrics.OutcomeMissingKey
		s.recorder.RecordGeneration(ctx, record)
		return nil, &ConfigurationError{Provider: s.provider.DisplayName()}
	}

	systemPrompt, err := s.prompts.BuildSystemPrompt()
	if err != nil {
		return nil, err
	}
	userPrompt := s.prompts.BuildQuestionPrompt(req.Category, lang)

	trace := s.tracer.StartTrace(ctx, "question", map[string]interface{}{
		"category": req.Category,
		"lang":     lang,
		"provider": s.provider.Name(),
	})
	defer trace.Finish()
	generation := trace.Generation("generate_question", map[string]interface{}{
		"temperature": s.params.Temperature,
		"max_tokens":  s.params.MaxTokens,
	})
	defer generation.Finish()

	start := time.Now()
	resp, err := s.provider.Generate(ctx, &llm.TextRequest{
		Model:        s.params.Model,
		SystemPrompt: systemPrompt,
		Prompt:       userPrompt,
		Temperature:  s.params.Temperature,
		MaxTokens:    s.params.MaxTokens,
	})
	record.Duration = time.Since(start)

	if err != nil {
		if errors.Is(err, llm.ErrMissingAPIKey) {
			record.Outcome = metrics.OutcomeMissingKey
			s.recorder.RecordGeneration(ctx, record)
			return nil, &ConfigurationError{Provider: s.provider.DisplayName()}
		}

		record.Outcome = metrics.OutcomeUpstreamError
		s.recorder.RecordGeneration(ctx, record)
		generation.SetLevel("ERROR")
		generation.Metadata(map[string]interface{}{"error": err.Error()})

		var upErr *llm.UpstreamError
		if !errors.As(err, &upErr) {
			upErr = &llm.UpstreamError{Provider: s.provider.DisplayName(), Err: err}
		}
		return nil, upErr
	}

	record.Outcome = metrics.OutcomeSuccess
	record.Model = resp.Model
	record.Usage = resp.Usage
	s.recorder.RecordGeneration(ctx, record)
	generation.LogQuestion(systemPrompt, userPrompt, resp, map[string]interface{}{
		"category": req.Category,
		"lang":     lang,
	})

	logger.LogGenerationRequest(ctx, resp.Model, record.Duration, resp.Usage, logger.Fields{
		"provider": s.provider.Name(),
		"category": req.Category,
		"lang":     lang,
	})

	return &models.GenerationResult{Question: resp.Text}, nil
}
