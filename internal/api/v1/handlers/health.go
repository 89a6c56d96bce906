package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"transcript-sheets/internal/api/errors"
	"transcript-sheets/internal/api/middleware"
	"transcript-sheets/internal/api/v1/dto"
	"transcript-sheets/internal/api/v1/services"
	"transcript-sheets/internal/app/metrics"
)

// HealthHandler serves operational endpoints
type HealthHandler struct {
	service services.HealthService
	metrics *metrics.Metrics
}

// NewHealthHandler creates a new health handler. m may be nil, in which case
// /metrics answers 404.
func NewHealthHandler(service services.HealthService, m *metrics.Metrics) *HealthHandler {
	return &HealthHandler{
		service: service,
		metrics: m,
	}
}

// Health handles GET /health
//
// @Summary Liveness and dependency health
// @Description Reports an independent status for the host, the spreadsheet, the transcription provider and backup storage. Answers 503 only when unhealthy.
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse "Healthy or degraded"
// @Failure 503 {object} dto.HealthResponse "Unhealthy"
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	response := h.service.Health(c.Request.Context())

	status := http.StatusOK
	if response.Status == dto.StatusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, response)
}

// Status handles GET /status
//
// @Summary Service status
// @Description Version, uptime, enabled features and runtime information
// @Tags health
// @Produce json
// @Success 200 {object} dto.StatusResponse
// @Router /status [get]
func (h *HealthHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Status(c.Request.Context()))
}

// Metrics handles GET /metrics
//
// @Summary Prometheus metrics
// @Tags health
// @Produce plain
// @Success 200 {string} string "Prometheus text exposition"
// @Router /metrics [get]
func (h *HealthHandler) Metrics(c *gin.Context) {
	if h.metrics == nil {
		middleware.HandleError(c, errors.NewNotFoundError("Metrics"))
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}
