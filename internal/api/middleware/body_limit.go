package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"transcript-sheets/internal/api/errors"
)

// BodyLimit caps request bodies at limit bytes. Reads past the cap fail with
// *http.MaxBytesError, which handlers turn into a 413.
func BodyLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > limit {
			writeError(c, errors.NewRequestTooLargeError(limit))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}

// EncodedBodyLimit returns the body cap for uploads of maxBytes: the base64
// expansion of the file plus room for the JSON envelope.
func EncodedBodyLimit(maxBytes int64) int64 {
	return (maxBytes+2)/3*4 + 1<<20
}
