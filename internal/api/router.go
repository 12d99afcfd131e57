package api

import (
	"github.com/Conceptual-Machines/cogito-api/internal/api/handlers"
	apimiddleware "github.com/Conceptual-Machines/cogito-api/internal/api/middleware"
	"github.com/Conceptual-Machines/cogito-api/internal/catalog"
	"github.com/Conceptual-Machines/cogito-api/internal/config"
	"github.com/Conceptual-Machines/cogito-api/internal/metrics"
	"github.com/Conceptual-Machines/cogito-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies are the long-lived components shared by all handlers
type Dependencies struct {
	Catalog         *catalog.Catalog
	QuestionService *services.QuestionService
	Recorder        *metrics.Recorder // optional
	RNG             catalog.RNG       // optional, drives deck shuffling
}

func SetupRouter(cfg *config.Config, deps Dependencies, version string) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking(deps.Recorder))

	// CORS middleware
	router.Use(apimiddleware.CORS(cfg.CORSAllowedOrigins))

	// Health check
	healthHandler := handlers.NewHealthHandler(deps.QuestionService)
	router.GET("/health", healthHandler.HealthCheck)

	// Metrics endpoints
	metricsHandler := handlers.NewMetricsHandler(version, deps.QuestionService, deps.Catalog)
	router.GET("/api/metrics", metricsHandler.GetMetrics)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		// Generated questions
		questionHandler := handlers.NewQuestionHandler(deps.QuestionService)
		api.GET("/question", questionHandler.GetQuestion)

		// Static catalog
		catalogHandler := handlers.NewCatalogHandler(deps.Catalog, deps.RNG)
		api.GET("/languages", catalogHandler.GetLanguages)
		api.GET("/categories", catalogHandler.GetCategories)
		api.GET("/questions", catalogHandler.GetQuestions)
		api.GET("/deck", catalogHandler.GetDeck)
		api.GET("/card", catalogHandler.GetCard)
	}

	return router
}
