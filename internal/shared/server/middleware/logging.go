package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mtb0903/manage-docs/internal/shared/telemetry"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		if userID := c.GetInt64(userIDKey); userID != 0 {
			fields["user_id"] = userID
		}
		if docID, ok := c.Get("documentId"); ok {
			fields["document_id"] = docID
		}

		telemetry.Info("request.complete", fields)
	}
}
