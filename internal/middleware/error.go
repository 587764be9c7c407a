package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "github.com/piyush-pb/Personal-Finance-Tracker/internal/errors"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/logger"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/telemetry"
)

// ErrorHandler returns a Gin middleware that handles errors set on the Gin
// context. Client errors pass through silently. Errors with an internal
// cause, and errors that are not AppErrors, are logged and forwarded to
// reporter. If the handler has not written a response yet, a consistent
// JSON error body is written.
func ErrorHandler(reporter telemetry.Reporter) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		// Process the last error (most relevant in a middleware chain)
		err := c.Errors.Last().Err

		appErr := apperrors.ErrInternalServer
		cause := err
		if errors.As(err, &appErr) {
			cause = appErr.Internal
		}

		if cause != nil {
			requestID := c.GetString(RequestIDKey)
			logger.Get().Errorw("request failed",
				"code", appErr.Code,
				"error", cause.Error(),
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"request_id", requestID,
			)
			reporter.Report(c.Request.Context(), cause, map[string]string{
				"code":       appErr.Code,
				"method":     c.Request.Method,
				"path":       c.FullPath(),
				"request_id": requestID,
			})
		}

		if c.Writer.Written() {
			return
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
	}
}
