package middleware

import (
	stderrors "errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"transcript-sheets/internal/api/errors"
	"transcript-sheets/internal/app/monitoring"
)

// ErrorHandler middleware handles errors consistently across the API.
// Anything that is not an APIError reaches the client as a generic internal error.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		requestID := c.GetString(RequestIDKey)

		var apiErr *errors.APIError

		switch err := recovered.(type) {
		case *errors.APIError:
			apiErr = err
		case error:
			logger.Error("Internal server error",
				zap.Error(err),
				zap.String("request_id", requestID),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)
			monitoring.CaptureError(c.Request.Context(), err, map[string]string{"request_id": requestID})
			apiErr = errors.NewInternalError("Internal server error")
		default:
			logger.Error("Unknown panic occurred",
				zap.Any("recovered", recovered),
				zap.String("request_id", requestID),
			)
			monitoring.CaptureError(c.Request.Context(), fmt.Errorf("panic: %v", recovered), map[string]string{"request_id": requestID})
			apiErr = errors.NewInternalError("Internal server error")
		}

		writeError(c, apiErr)
	})
}

// HandleError is a helper function for handlers to return errors
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var apiErr *errors.APIError
	if stderrors.As(err, &apiErr) {
		writeError(c, apiErr)
		return
	}

	// If it's not an APIError, panic so the error middleware can handle it
	panic(err)
}

func writeError(c *gin.Context, apiErr *errors.APIError) {
	resp := *apiErr
	resp.RequestID = c.GetString(RequestIDKey)
	c.Header("Content-Type", "application/json")
	c.AbortWithStatusJSON(resp.HTTPStatus(), &resp)
}
