package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
)

const (
	// HTTP status code threshold for considering a request successful
	successStatusCodeThreshold = http.StatusBadRequest
)

// SentryMetrics records request and generation data as Sentry spans
type SentryMetrics struct {
	enabled bool
}

// NewSentryMetrics creates a new Sentry metrics client.
// Spans are dropped by the SDK when Sentry is not initialized.
func NewSentryMetrics() *SentryMetrics {
	return &SentryMetrics{
		enabled: true,
	}
}

// RecordAPIRequest records API request metrics
func (m *SentryMetrics) RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration) {
	if m == nil || !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "api.request")
	defer span.Finish()

	span.SetTag("endpoint", endpoint)
	span.SetTag("status_code", fmt.Sprintf("%d", statusCode))
	span.SetTag("success", fmt.Sprintf("%t", statusCode < successStatusCodeThreshold))

	span.SetData("duration_ms", duration.Milliseconds())
	span.SetData("endpoint", endpoint)
	span.SetData("status_code", statusCode)

	if statusCode < successStatusCodeThreshold {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusInternalError
	}

	span.Description = fmt.Sprintf("API Request: %s", endpoint)
}

// RecordGeneration records one question generation on the current transaction and as a child span
func (m *SentryMetrics) RecordGeneration(ctx context.Context, g Generation) {
	if m == nil || !m.enabled {
		return
	}

	if transaction := sentry.TransactionFromContext(ctx); transaction != nil {
		transaction.SetTag("llm.provider", g.Provider)
		transaction.SetTag("llm.model", g.Model)
		transaction.SetTag("question.outcome", string(g.Outcome))
		transaction.SetData("llm.total_tokens", g.Usage.TotalTokens)
	}

	span := sentry.StartSpan(ctx, "question.generate")
	defer span.Finish()

	span.SetTag("provider", g.Provider)
	span.SetTag("model", g.Model)
	span.SetTag("outcome", string(g.Outcome))
	span.SetTag("category", g.Category)
	span.SetTag("lang", g.Language)

	span.SetData("duration_ms", g.Duration.Milliseconds())
	span.SetData("input_tokens", g.Usage.InputTokens)
	span.SetData("output_tokens", g.Usage.OutputTokens)
	span.SetData("total_tokens", g.Usage.TotalTokens)

	if g.Outcome == OutcomeSuccess {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusInternalError
	}

	span.Description = fmt.Sprintf("Question Generation: %s", g.Outcome)
}
