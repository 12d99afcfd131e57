package handlers

import (
	"errors"
	"net/http"

	"github.com/Conceptual-Machines/cogito-api/internal/llm"
	"github.com/Conceptual-Machines/cogito-api/internal/logger"
	"github.com/Conceptual-Machines/cogito-api/internal/models"
	"github.com/Conceptual-Machines/cogito-api/internal/services"
	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	service *services.QuestionService
}

func NewQuestionHandler(service *services.QuestionService) *QuestionHandler {
	return &QuestionHandler{service: service}
}

// GetQuestion generates one deep-talk question for ?category=&lang=.
// Both parameters are optional and passed to the prompt verbatim.
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	var req models.GenerationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Client-facing failure messages. They stay fixed whichever provider is
// selected; the provider only shows up in logs.
const (
	errMissingKey     = "Missing OpenAI key"
	errUpstreamFailed = "OpenAI request failed"
)

func (h *QuestionHandler) handleError(c *gin.Context, err error) {
	fields := logger.WithContext(c)
	fields["provider"] = h.service.ProviderName()
	fields["provider_display"] = h.service.ProviderDisplayName()
	fields["model"] = h.service.Model()

	var cfgErr *services.ConfigurationError
	if errors.As(err, &cfgErr) {
		logger.Error("Question generation not configured", err, fields)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: errMissingKey})
		return
	}

	var upErr *llm.UpstreamError
	if errors.As(err, &upErr) {
		fields["upstream_status"] = upErr.StatusCode
		fields["upstream_detail"] = upErr.Detail
	}
	logger.Error("Question generation failed", err, fields)

	c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: errUpstreamFailed})
}
