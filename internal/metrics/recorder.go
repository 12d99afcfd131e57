package metrics

import (
	"context"
	"time"

	"github.com/Conceptual-Machines/cogito-api/internal/llm"
)

// Outcome classifies how a question generation ended
type Outcome string

const (
	OutcomeSuccess       Outcome = "success"
	OutcomeMissingKey    Outcome = "missing_key"
	OutcomeUpstreamError Outcome = "upstream_error"
)

// Generation describes one question generation
type Generation struct {
	Provider string
	Model    string
	Category string
	Language string
	Outcome  Outcome
	Duration time.Duration
	Usage    llm.Usage
}

// Recorder fans metrics out to Prometheus, Sentry and CloudWatch.
// Nil sinks are skipped; Prometheus is always recorded.
type Recorder struct {
	cloudwatch *Client
	sentry     *SentryMetrics
}

// NewRecorder creates a recorder over the given sinks
func NewRecorder(cloudwatch *Client, sentry *SentryMetrics) *Recorder {
	return &Recorder{
		cloudwatch: cloudwatch,
		sentry:     sentry,
	}
}

// RecordAPIRequest records one completed HTTP request
func (r *Recorder) RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration) {
	ObserveAPIRequest(endpoint, statusCode, duration)
	if r == nil {
		return
	}
	r.sentry.RecordAPIRequest(ctx, endpoint, statusCode, duration)
	r.cloudwatch.RecordAPIRequest(endpoint, statusCode, duration)
}

// RecordGeneration records one question generation
func (r *Recorder) RecordGeneration(ctx context.Context, g Generation) {
	ObserveGeneration(g)
	if r == nil {
		return
	}
	r.sentry.RecordGeneration(ctx, g)
	r.cloudwatch.RecordGeneration(g)
}
