package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/Conceptual-Machines/cogito-api/internal/api"
	"github.com/Conceptual-Machines/cogito-api/internal/catalog"
	"github.com/Conceptual-Machines/cogito-api/internal/config"
	"github.com/Conceptual-Machines/cogito-api/internal/llm"
	"github.com/Conceptual-Machines/cogito-api/internal/metrics"
	"github.com/Conceptual-Machines/cogito-api/internal/observability"
	"github.com/Conceptual-Machines/cogito-api/internal/services"
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	sentryFlushTimeout    = 2 * time.Second
	environmentProduction = "production"
)

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

// GetVersion returns the current release version
func GetVersion() string {
	return releaseVersion
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()
	ctx := context.Background()

	// Initialize Sentry
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			Release:          "cogito-api@" + releaseVersion,
			EnableTracing:    true,
			TracesSampleRate: 1.0,
			EnableLogs:       true,
			Debug:            cfg.Environment != environmentProduction,
			BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
				// Filter out sensitive data
				if event.Request != nil {
					event.Request.Headers = filterSensitiveHeaders(event.Request.Headers)
				}
				return event
			},
		}); err != nil {
			log.Printf("Failed to initialize Sentry: %v", err)
		} else {
			log.Printf("✅ Sentry initialized (environment: %s, release: %s)", cfg.Environment, releaseVersion)
			// Flush on shutdown
			defer sentry.Flush(sentryFlushTimeout)
		}
	} else {
		log.Println("⚠️  Sentry not configured (SENTRY_DSN not set)")
	}

	// Load the question catalog; broken content is a startup failure
	cat, err := catalog.LoadEmbedded()
	if err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to load question catalog:", err)
	}

	// Metrics sinks
	metrics.Register(prometheus.DefaultRegisterer)
	cloudwatchClient, err := metrics.NewClient(ctx, cfg.Environment)
	if err != nil {
		log.Printf("⚠️  CloudWatch metrics unavailable: %v", err)
	}
	recorder := metrics.NewRecorder(cloudwatchClient, metrics.NewSentryMetrics())

	// LLM tracing
	tracer := observability.InitializeLangfuse(ctx, cfg)

	// LLM provider
	factory := llm.NewProviderFactory(llm.FactoryOptions{
		OpenAIAPIKey:  cfg.OpenAIAPIKey,
		OpenAIBaseURL: cfg.OpenAIBaseURL,
		OpenAITimeout: cfg.OpenAITimeout,
		GeminiAPIKey:  cfg.GeminiAPIKey,
		GeminiBaseURL: cfg.GeminiBaseURL,
	})
	provider, err := factory.GetProvider(ctx, cfg.LLMProvider)
	if err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to create LLM provider:", err)
	}
	if cfg.ActiveAPIKey() == "" {
		log.Printf("⚠️  %s API key not set, /api/question will answer 500", provider.DisplayName())
	}

	questionService := services.NewQuestionService(
		provider,
		cfg.ActiveAPIKey(),
		services.GetQuestionParameters(cfg),
		tracer,
		recorder,
	)

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	router := api.SetupRouter(cfg, api.Dependencies{
		Catalog:         cat,
		QuestionService: questionService,
		Recorder:        recorder,
	}, GetVersion())

	log.Printf("🚀 Starting server on port %s (provider: %s, model: %s)",
		cfg.Port, provider.Name(), questionService.Model())
	if err := router.Run(":" + cfg.Port); err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to start server:", err)
	}
}

func filterSensitiveHeaders(headers map[string]string) map[string]string {
	filtered := make(map[string]string)
	sensitiveKeys := map[string]bool{
		"authorization":  true,
		"cookie":         true,
		"x-api-key":      true,
		"x-goog-api-key": true,
	}

	for k, v := range headers {
		if sensitiveKeys[strings.ToLower(k)] {
			filtered[k] = "[REDACTED]"
		} else {
			filtered[k] = v
		}
	}
	return filtered
}
