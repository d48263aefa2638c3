package middleware

import (
	"errors"
	"net/http"

	"pathbridge-backend/internal/delivery/http/response"
	"pathbridge-backend/pkg/apperror"
	"pathbridge-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler converts errors appended to the gin context into the JSON
// envelope. AppErrors keep their status and message; anything else is logged
// server-side and reported as a generic failure so internal detail never
// reaches the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				response.Error(c, appErr.Code, appErr.Message, nil)
			} else {
				logger.Log.Error("unhandled request error", "path", c.FullPath(), "error", err)
				response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
			}
		}
	}
}
