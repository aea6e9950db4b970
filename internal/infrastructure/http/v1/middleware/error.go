package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockmaster/internal/core/apperror"
	"stockmaster/pkg/logger"
)

// ErrorHandler renders the last error attached with c.Error as JSON.
// Internal causes are logged and replaced with a generic message.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err

		if appErr, ok := apperror.AsAppError(err); ok {
			if appErr.Err != nil {
				logger.Error(c.Request.Context(), "request error",
					"code", appErr.Code,
					"cause", appErr.Err,
				)
			}

			message := appErr.Message
			details := appErr.Details
			if appErr.HTTPStatus >= http.StatusInternalServerError {
				message = "Internal server error"
				details = map[string]any{KeyRequestID: c.GetString(KeyRequestID)}
			}

			c.JSON(appErr.HTTPStatus, gin.H{
				"code":    appErr.Code,
				"message": message,
				"details": details,
			})
			return
		}

		logger.Error(c.Request.Context(), "unhandled error", "error", err)

		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    apperror.CodeInternal,
			"message": "Internal server error",
			"details": map[string]any{
				KeyRequestID: c.GetString(KeyRequestID),
			},
		})
	}
}
