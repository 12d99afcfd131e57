package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

var (
	apiRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cogito_api_requests_total",
			Help: "Number of HTTP requests by route and status code",
		},
		[]string{"endpoint", "status"},
	)

	apiLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cogito_api_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	questionGenerations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cogito_question_generations_total",
			Help: "Number of question generations by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	questionTokens = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cogito_question_tokens_total",
			Help: "Tokens processed per model",
		},
		[]string{"kind", "model"},
	)

	generationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cogito_question_generation_duration_seconds",
			Help:    "Upstream question generation duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)
)

// Register registers all collectors with r
func Register(r prometheus.Registerer) {
	r.MustRegister(
		apiRequests,
		apiLatency,
		questionGenerations,
		questionTokens,
		generationDuration,
	)
}

// ObserveAPIRequest counts one HTTP request and its latency
func ObserveAPIRequest(endpoint string, statusCode int, d time.Duration) {
	apiRequests.WithLabelValues(endpoint, strconv.Itoa(statusCode)).Inc()
	apiLatency.WithLabelValues(endpoint).Observe(d.Seconds())
}

// ObserveGeneration counts one question generation and its token usage
func ObserveGeneration(g Generation) {
	questionGenerations.WithLabelValues(g.Provider, string(g.Outcome)).Inc()
	if g.Outcome == OutcomeMissingKey {
		return
	}
	generationDuration.WithLabelValues(g.Provider).Observe(g.Duration.Seconds())
	if g.Usage.InputTokens > 0 {
		questionTokens.WithLabelValues("in", g.Model).Add(float64(g.Usage.InputTokens))
	}
	if g.Usage.OutputTokens > 0 {
		questionTokens.WithLabelValues("out", g.Model).Add(float64(g.Usage.OutputTokens))
	}
}

// GenerationCounts reads the generation counter back as provider -> outcome -> count.
// Counts cover the whole process lifetime.
func GenerationCounts() map[string]map[string]int {
	ch := make(chan prometheus.Metric)
	go func() {
		questionGenerations.Collect(ch)
		close(ch)
	}()

	counts := map[string]map[string]int{}
	for m := range ch {
		var pb dto.Metric
		if err := m.Write(&pb); err != nil {
			continue
		}
		var provider, outcome string
		for _, lp := range pb.GetLabel() {
			switch lp.GetName() {
			case "provider":
				provider = lp.GetValue()
			case "outcome":
				outcome = lp.GetValue()
			}
		}
		if counts[provider] == nil {
			counts[provider] = map[string]int{}
		}
		counts[provider][outcome] = int(pb.GetCounter().GetValue())
	}
	return counts
}
