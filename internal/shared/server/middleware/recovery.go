package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"learnhub-backend/internal/shared/server/respond"
	"learnhub-backend/internal/shared/telemetry"
)

// Recovery converts handler panics into the standard error envelope. Upload
// parsing and third-party extraction are the usual sources here, so the
// stack is logged with the request ID for correlation.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				reqID := RequestIDFromContext(c)
				telemetry.Error("panic", map[string]any{
					"request_id": reqID,
					"error":      rec,
					"stack":      string(debug.Stack()),
					"path":       c.Request.URL.Path,
					"method":     c.Request.Method,
				})
				respond.Error(c, http.StatusInternalServerError, "internal", "Internal server error", nil)
				c.Abort()
			}
		}()
		c.Next()
	}
}
