package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chatCompletionBody = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "gpt-3.5-turbo-0125",
  "choices": [
    {"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "  Was gibt dir Halt?  "}}
  ],
  "usage": {"prompt_tokens": 31, "completion_tokens": 7, "total_tokens": 38}
}`

type capturedRequest struct {
	Path          string
	Authorization string
	Body          map[string]any
}

func newChatStub(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32, *capturedRequest) {
	t.Helper()
	var calls atomic.Int32
	captured := &capturedRequest{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		captured.Path = r.URL.Path
		captured.Authorization = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &captured.Body)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls, captured
}

func testTextRequest() *TextRequest {
	return &TextRequest{
		Model:        "gpt-3.5-turbo",
		SystemPrompt: "Reply with one short question.",
		Prompt:       `Stelle eine tiefgründige Frage aus der Kategorie "Liebe" auf Deutsch.`,
		Temperature:  0.7,
		MaxTokens:    50,
	}
}

func TestNewOpenAIProvider(t *testing.T) {
	provider := NewOpenAIProvider(OpenAIOptions{APIKey: "test-api-key"})
	require.NotNil(t, provider)
	assert.Equal(t, "openai", provider.Name())
	assert.Equal(t, "OpenAI", provider.DisplayName())
	assert.NotNil(t, provider.client)
}

func TestOpenAIProvider_BuildRequestParams(t *testing.T) {
	provider := NewOpenAIProvider(OpenAIOptions{APIKey: "test-key"})

	params := provider.buildRequestParams(testTextRequest())
	assert.Equal(t, "gpt-3.5-turbo", string(params.Model))
	require.Len(t, params.Messages, 2)
	assert.NotNil(t, params.Messages[0].OfSystem)
	assert.NotNil(t, params.Messages[1].OfUser)
	assert.InDelta(t, 0.7, params.Temperature.Value, 1e-9)
	assert.Equal(t, int64(50), params.MaxTokens.Value)

	// Without a system prompt only the user message is sent
	req := testTextRequest()
	req.SystemPrompt = ""
	params = provider.buildRequestParams(req)
	require.Len(t, params.Messages, 1)
	assert.NotNil(t, params.Messages[0].OfUser)
}

func TestOpenAIProvider_Generate(t *testing.T) {
	srv, calls, captured := newChatStub(t, http.StatusOK, chatCompletionBody)
	provider := NewOpenAIProvider(OpenAIOptions{APIKey: "sk-test", BaseURL: srv.URL})

	resp, err := provider.Generate(context.Background(), testTextRequest())
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "/chat/completions", captured.Path)
	assert.Equal(t, "Bearer sk-test", captured.Authorization)
	assert.Equal(t, "gpt-3.5-turbo", captured.Body["model"])
	assert.InDelta(t, 0.7, captured.Body["temperature"], 1e-9)
	assert.InDelta(t, 50, captured.Body["max_tokens"], 1e-9)

	messages, ok := captured.Body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	system := messages[0].(map[string]any)
	user := messages[1].(map[string]any)
	assert.Equal(t, "system", system["role"])
	assert.Equal(t, "user", user["role"])
	assert.Contains(t, user["content"], "Frage")
	assert.Contains(t, user["content"], "Liebe")

	assert.Equal(t, "Was gibt dir Halt?", resp.Text)
	assert.Equal(t, "gpt-3.5-turbo-0125", resp.Model)
	assert.Equal(t, Usage{InputTokens: 31, OutputTokens: 7, TotalTokens: 38}, resp.Usage)
}

func TestOpenAIProvider_GenerateUpstreamStatus(t *testing.T) {
	body := `{"error": {"message": "Incorrect API key provided", "type": "invalid_request_error", "code": "invalid_api_key"}}`
	srv, calls, _ := newChatStub(t, http.StatusUnauthorized, body)
	provider := NewOpenAIProvider(OpenAIOptions{APIKey: "sk-wrong", BaseURL: srv.URL})

	_, err := provider.Generate(context.Background(), testTextRequest())
	require.Error(t, err)

	var upErr *UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, "OpenAI", upErr.Provider)
	assert.Equal(t, http.StatusUnauthorized, upErr.StatusCode)
	assert.NotEmpty(t, upErr.Detail)

	// No retries
	assert.Equal(t, int32(1), calls.Load())
}

func TestOpenAIProvider_GenerateServerErrorIsNotRetried(t *testing.T) {
	srv, calls, _ := newChatStub(t, http.StatusInternalServerError, `{"error": {"message": "boom"}}`)
	provider := NewOpenAIProvider(OpenAIOptions{APIKey: "sk-test", BaseURL: srv.URL})

	_, err := provider.Generate(context.Background(), testTextRequest())

	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusInternalServerError, upErr.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestOpenAIProvider_GenerateNoChoices(t *testing.T) {
	body := `{"id": "x", "object": "chat.completion", "created": 1, "model": "gpt-3.5-turbo", "choices": []}`
	srv, _, _ := newChatStub(t, http.StatusOK, body)
	provider := NewOpenAIProvider(OpenAIOptions{APIKey: "sk-test", BaseURL: srv.URL})

	_, err := provider.Generate(context.Background(), testTextRequest())

	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestOpenAIProvider_GenerateBlankContent(t *testing.T) {
	bodies := map[string]string{
		"whitespace": `{"id": "x", "object": "chat.completion", "created": 1, "model": "gpt-3.5-turbo",
			"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "  \n "}}]}`,
		"missing message": `{"id": "x", "object": "chat.completion", "created": 1, "model": "gpt-3.5-turbo",
			"choices": [{}]}`,
		"null content": `{"id": "x", "object": "chat.completion", "created": 1, "model": "gpt-3.5-turbo",
			"choices": [{"index": 0, "finish_reason": "length", "message": {"role": "assistant", "content": null}}]}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			srv, calls, _ := newChatStub(t, http.StatusOK, body)
			provider := NewOpenAIProvider(OpenAIOptions{APIKey: "sk-test", BaseURL: srv.URL})

			resp, err := provider.Generate(context.Background(), testTextRequest())

			assert.Nil(t, resp)
			var upErr *UpstreamError
			require.ErrorAs(t, err, &upErr)
			assert.Equal(t, "OpenAI", upErr.Provider)
			assert.ErrorIs(t, err, ErrEmptyResponse)
			assert.Equal(t, int32(1), calls.Load())
		})
	}
}

func TestOpenAIProvider_GenerateTransportFailure(t *testing.T) {
	srv, _, _ := newChatStub(t, http.StatusOK, chatCompletionBody)
	url := srv.URL
	srv.Close()

	provider := NewOpenAIProvider(OpenAIOptions{APIKey: "sk-test", BaseURL: url, Timeout: time.Second})

	_, err := provider.Generate(context.Background(), testTextRequest())

	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Zero(t, upErr.StatusCode)
}

func TestOpenAIProvider_GenerateMissingKey(t *testing.T) {
	srv, calls, _ := newChatStub(t, http.StatusOK, chatCompletionBody)
	provider := NewOpenAIProvider(OpenAIOptions{BaseURL: srv.URL})

	_, err := provider.Generate(context.Background(), testTextRequest())
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Equal(t, int32(0), calls.Load())
}
