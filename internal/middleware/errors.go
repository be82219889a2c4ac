package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"invoice-dashboard-backend/internal/model"
	"invoice-dashboard-backend/internal/service"
)

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidRequest = errors.New("invalid request")
	ErrNotFound       = errors.New("not found")
)

// ErrorHandling renders errors attached to the context after the chain has
// run. Handlers that already wrote a response are left alone.
func ErrorHandling() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, payload)
	}
}

// AbortWithError records err on the context and stops the chain so the
// error middleware can render it.
func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, model.ErrorResponse) {
	// Invoice write failures carry their own user-facing message.
	var svcErr *service.InvoiceServiceError
	if errors.As(err, &svcErr) && svcErr.Message != "" {
		return http.StatusInternalServerError, model.ErrorResponse{
			Status:  http.StatusText(http.StatusInternalServerError),
			Message: svcErr.Message,
		}
	}

	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, model.ErrorResponse{
			Status:  http.StatusText(http.StatusUnauthorized),
			Message: "Unauthorized",
		}
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest, model.ErrorResponse{
			Status:  http.StatusText(http.StatusBadRequest),
			Message: "Invalid request",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, model.ErrorResponse{
			Status:  http.StatusText(http.StatusNotFound),
			Message: "Resource not found",
		}
	default:
		return http.StatusInternalServerError, model.ErrorResponse{
			Status:  http.StatusText(http.StatusInternalServerError),
			Message: "Internal server error",
		}
	}
}

func isNotFoundError(err error) bool {
	if errors.Is(err, ErrNotFound) || errors.Is(err, service.ErrUserNotFound) {
		return true
	}
	return strings.Contains(err.Error(), "not found")
}
