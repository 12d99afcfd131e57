package handlers

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/Conceptual-Machines/cogito-api/internal/catalog"
	"github.com/Conceptual-Machines/cogito-api/internal/metrics"
	"github.com/Conceptual-Machines/cogito-api/internal/models"
	"github.com/Conceptual-Machines/cogito-api/internal/services"
	"github.com/gin-gonic/gin"
)

type MetricsHandler struct {
	startTime time.Time
	version   string
	service   *services.QuestionService
	catalog   *catalog.Catalog
}

func NewMetricsHandler(version string, service *services.QuestionService, c *catalog.Catalog) *MetricsHandler {
	return &MetricsHandler{
		startTime: time.Now(),
		version:   version,
		service:   service,
		catalog:   c,
	}
}

const (
	secondsPerMinute = 60
	secondsPerHour   = 3600
)

// formatUptime formats the uptime duration with seconds rounded to 2 decimal places
func formatUptime(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % secondsPerMinute
	seconds := d.Seconds() - float64(hours*secondsPerHour) - float64(minutes*secondsPerMinute)

	if hours > 0 {
		return fmt.Sprintf("%dh%dm%.2fs", hours, minutes, seconds)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm%.2fs", minutes, seconds)
	}
	return fmt.Sprintf("%.2fs", seconds)
}

// MetricsResponse is the JSON status document served at /api/metrics
type MetricsResponse struct {
	Status    string        `json:"status"`
	Uptime    string        `json:"uptime"`
	Timestamp string        `json:"timestamp"`
	Version   string        `json:"version"`
	StartTime string        `json:"start_time"`
	System    SystemMetrics `json:"system"`
	API       APIMetrics    `json:"api"`
}

type SystemMetrics struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	MemAllocMB   uint64 `json:"mem_alloc_mb"`
	NumGC        uint32 `json:"num_gc"`
}

// APIMetrics describes what the service is serving and how generations went
type APIMetrics struct {
	LLM         LLMStatus                 `json:"llm"`
	Languages   int                       `json:"languages"`
	Categories  int                       `json:"categories"`
	Generations map[string]map[string]int `json:"generations"` // provider -> outcome -> count
}

type LLMStatus struct {
	Provider   string `json:"provider"`
	Model      string `json:"model"`
	Configured bool   `json:"configured"`
}

const bytesToMB = 1024 * 1024

func (h *MetricsHandler) GetMetrics(c *gin.Context) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	now := time.Now()

	c.JSON(http.StatusOK, MetricsResponse{
		Status:    "healthy",
		Uptime:    formatUptime(now.Sub(h.startTime)),
		Timestamp: now.UTC().Format(time.RFC3339),
		Version:   h.version,
		StartTime: h.startTime.UTC().Format(time.RFC3339),
		System: SystemMetrics{
			GoVersion:    runtime.Version(),
			NumGoroutine: runtime.NumGoroutine(),
			MemAllocMB:   mem.Alloc / bytesToMB,
			NumGC:        mem.NumGC,
		},
		API: APIMetrics{
			LLM: LLMStatus{
				Provider:   h.service.ProviderName(),
				Model:      h.service.Model(),
				Configured: h.service.Configured(),
			},
			Languages:   len(h.catalog.Languages()),
			Categories:  len(models.CategoryOrder),
			Generations: metrics.GenerationCounts(),
		},
	})
}
