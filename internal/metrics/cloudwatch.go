package metrics

import (
	"context"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

const (
	namespace                = "COGITO/API"
	httpStatusServerError    = 500
	cloudwatchTimeoutSeconds = 5
)

// Client wraps CloudWatch client for custom metrics
type Client struct {
	client      *cloudwatch.Client
	enabled     bool
	environment string
}

// NewClient creates a new CloudWatch metrics client
func NewClient(ctx context.Context, environment string) (*Client, error) {
	// Only enable in production
	if environment != "production" {
		log.Printf("📊 CloudWatch Metrics: DISABLED (environment: %s)", environment)
		return &Client{
			enabled:     false,
			environment: environment,
		}, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		log.Printf("⚠️  Failed to load AWS config for CloudWatch: %v", err)
		return &Client{enabled: false, environment: environment}, nil
	}

	client := cloudwatch.NewFromConfig(cfg)
	log.Printf("📊 CloudWatch Metrics: ✅ ENABLED (namespace: %s)", namespace)

	return &Client{
		client:      client,
		enabled:     true,
		environment: environment,
	}, nil
}

// Enabled reports whether metrics are sent to CloudWatch
func (m *Client) Enabled() bool {
	return m != nil && m.enabled
}

// RecordAPIRequest records an API request metric
func (m *Client) RecordAPIRequest(endpoint string, statusCode int, duration time.Duration) {
	if !m.Enabled() {
		return
	}

	go func() {
		metricName := "APIRequests"
		if statusCode >= httpStatusServerError {
			metricName = "APIErrors"
		}

		dimensions := []types.Dimension{
			{
				Name:  aws.String("Endpoint"),
				Value: aws.String(endpoint),
			},
			m.environmentDimension(),
		}

		data := []types.MetricDatum{
			datum(metricName, 1, types.StandardUnitCount, dimensions),
			datum("APILatency", float64(duration.Milliseconds()), types.StandardUnitMilliseconds, dimensions),
		}
		if err := m.putMetrics(data); err != nil {
			log.Printf("Failed to record %s metric: %v", metricName, err)
		}
	}()
}

// RecordGeneration records the outcome, latency and token usage of one question generation
func (m *Client) RecordGeneration(g Generation) {
	if !m.Enabled() {
		return
	}

	go func() {
		dimensions := []types.Dimension{
			{
				Name:  aws.String("Provider"),
				Value: aws.String(g.Provider),
			},
			{
				Name:  aws.String("Outcome"),
				Value: aws.String(string(g.Outcome)),
			},
			m.environmentDimension(),
		}

		data := []types.MetricDatum{
			datum("QuestionGenerations", 1, types.StandardUnitCount, dimensions),
			datum("GenerationDuration", float64(g.Duration.Milliseconds()), types.StandardUnitMilliseconds, dimensions),
		}

		if g.Usage.TotalTokens > 0 {
			tokenDimensions := []types.Dimension{
				{
					Name:  aws.String("Model"),
					Value: aws.String(g.Model),
				},
				m.environmentDimension(),
			}
			data = append(data,
				datum("LLMTokens/Total", float64(g.Usage.TotalTokens), types.StandardUnitCount, tokenDimensions),
				datum("LLMTokens/Input", float64(g.Usage.InputTokens), types.StandardUnitCount, tokenDimensions),
				datum("LLMTokens/Output", float64(g.Usage.OutputTokens), types.StandardUnitCount, tokenDimensions),
			)
		}

		if err := m.putMetrics(data); err != nil {
			log.Printf("Failed to record QuestionGenerations metrics: %v", err)
		}
	}()
}

func (m *Client) environmentDimension() types.Dimension {
	return types.Dimension{
		Name:  aws.String("Environment"),
		Value: aws.String(m.environment),
	}
}

func datum(name string, value float64, unit types.StandardUnit, dimensions []types.Dimension) types.MetricDatum {
	return types.MetricDatum{
		MetricName: aws.String(name),
		Value:      aws.Float64(value),
		Unit:       unit,
		Timestamp:  aws.Time(time.Now()),
		Dimensions: dimensions,
	}
}

// putMetrics sends a batch of metrics to CloudWatch
func (m *Client) putMetrics(data []types.MetricDatum) error {
	if !m.Enabled() || m.client == nil {
		return nil
	}

	timeout := time.Duration(cloudwatchTimeoutSeconds) * time.Second
	cwCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	_, err := m.client.PutMetricData(cwCtx, &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(namespace),
		MetricData: data,
	})

	return err
}
