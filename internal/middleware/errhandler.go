package middleware

import (
	"github.com/gin-gonic/gin"

	ierr "github.com/set-night/invoicedash/internal/errors"
)

// ErrorResponse is the body written for errors attached to the gin context.
type ErrorResponse struct {
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorHandler renders the last error attached with c.Error, unless the
// handler already wrote a response.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		message := ierr.Hint(err)
		if message == "" {
			message = "An unexpected error occurred"
		}

		c.JSON(ierr.HTTPStatusFromErr(err), ErrorResponse{
			Message: message,
			Details: ierr.ReportableDetails(err),
		})
	}
}
