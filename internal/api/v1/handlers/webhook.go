package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"transcript-sheets/internal/api/middleware"
	"transcript-sheets/internal/api/v1/services"
)

// WebhookHandler receives form-response webhooks
type WebhookHandler struct {
	service services.WebhookService
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(service services.WebhookService) *WebhookHandler {
	return &WebhookHandler{
		service: service,
	}
}

// Receive handles POST /webhook/:provider
//
// @Summary Receive a form-response webhook
// @Description Maps the provider payload onto the webhook worksheet columns and appends the row. Only the videoask provider is registered.
// @Tags webhook
// @Accept json
// @Produce json
// @Param provider path string true "Webhook provider" Enums(videoask)
// @Param payload body object true "Provider payload"
// @Success 200 {object} dto.WebhookResponse "Row stored"
// @Failure 404 {object} errors.APIError "Unknown provider"
// @Failure 413 {object} errors.APIError "Payload too large"
// @Failure 422 {object} errors.APIError "Malformed payload"
// @Failure 500 {object} errors.APIError "Row could not be stored"
// @Router /webhook/{provider} [post]
func (h *WebhookHandler) Receive(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		middleware.HandleError(c, bodyError(err, "Failed to read request body"))
		return
	}

	response, err := h.service.Receive(c.Request.Context(), c.Param("provider"), body)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Test handles POST /webhook/test
//
// @Summary Dry-run the payload mapping
// @Description Maps the posted payload, or a built-in sample when the body has no contact. Nothing is written.
// @Tags webhook
// @Accept json
// @Produce json
// @Param payload body object false "Provider payload"
// @Success 200 {object} dto.WebhookTestResponse
// @Failure 422 {object} errors.APIError "Malformed payload"
// @Router /webhook/test [post]
func (h *WebhookHandler) Test(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		middleware.HandleError(c, bodyError(err, "Failed to read request body"))
		return
	}

	response, err := h.service.Test(c.Request.Context(), body)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Validate handles GET /webhook/validate
//
// @Summary Validate webhook configuration
// @Description Checks the spreadsheet client, both worksheets and the backup directory. Environment variables are reported by presence, never by value.
// @Tags webhook
// @Produce json
// @Success 200 {object} dto.WebhookValidationResponse
// @Router /webhook/validate [get]
func (h *WebhookHandler) Validate(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Validate(c.Request.Context()))
}
