package routes

import (
	"github.com/gin-gonic/gin"

	"transcript-sheets/internal/api/middleware"
	"transcript-sheets/internal/api/v1/handlers"
	"transcript-sheets/internal/api/v1/services"
	"transcript-sheets/internal/app/metrics"
)

// DefaultWebhookBodyLimit caps webhook payloads
const DefaultWebhookBodyLimit int64 = 10 << 20

// RegisterRoutes registers all API routes
func RegisterRoutes(router gin.IRouter, container *ServiceContainer) {
	// Transcription routes
	transcriptionHandler := handlers.NewTranscriptionHandler(container.TranscriptionService)
	transcribe := router.Group("/transcribe", middleware.BodyLimit(middleware.EncodedBodyLimit(container.MaxUploadBytes)))
	{
		transcribe.POST("", transcriptionHandler.Transcribe)
		transcribe.POST("/upload", transcriptionHandler.Upload)
	}

	// Webhook routes
	webhookLimit := container.WebhookBodyLimit
	if webhookLimit <= 0 {
		webhookLimit = DefaultWebhookBodyLimit
	}
	webhookHandler := handlers.NewWebhookHandler(container.WebhookService)
	webhook := router.Group("/webhook", middleware.BodyLimit(webhookLimit))
	{
		webhook.GET("/validate", webhookHandler.Validate)
		webhook.POST("/test", webhookHandler.Test)
		webhook.POST("/:provider", webhookHandler.Receive)
	}

	// Operational routes
	healthHandler := handlers.NewHealthHandler(container.HealthService, container.Metrics)
	router.GET("/health", healthHandler.Health)
	router.GET("/status", healthHandler.Status)
	router.GET("/metrics", healthHandler.Metrics)
}

// ServiceContainer holds all services needed by handlers
type ServiceContainer struct {
	TranscriptionService services.TranscriptionService
	WebhookService       services.WebhookService
	HealthService        services.HealthService
	Metrics              *metrics.Metrics

	// MaxUploadBytes is the decoded file limit; request bodies may carry its base64 expansion
	MaxUploadBytes   int64
	WebhookBodyLimit int64
}
