package handlers

import (
	"net/http"

	"github.com/Conceptual-Machines/cogito-api/internal/services"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	service *services.QuestionService
}

func NewHealthHandler(service *services.QuestionService) *HealthHandler {
	return &HealthHandler{service: service}
}

// HealthCheck returns the health status of the API.
// A missing provider key does not make the service unhealthy; the catalog still works.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"llm_provider": gin.H{
			"name":       h.service.ProviderName(),
			"model":      h.service.Model(),
			"configured": h.service.Configured(),
		},
	})
}
