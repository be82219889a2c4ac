package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"invoice-dashboard-backend/internal/service"
	"invoice-dashboard-backend/internal/session"
)

// AuthMiddleware validates the session for protected routes. The token
// comes from the session cookie or, for non-browser clients, a Bearer
// Authorization header.
func AuthMiddleware(authService service.AuthService, sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c, sessions)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "Unauthorized",
				"message": "Authentication required",
			})
			c.Abort()
			return
		}

		claims, err := authService.ValidateSessionToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "Unauthorized",
				"message": "Invalid or expired session",
			})
			c.Abort()
			return
		}

		// Set user information in context for handlers to use
		c.Set("userID", claims.UserID)
		c.Set("userEmail", claims.Email)

		c.Next()
	}
}

// OptionalAuthMiddleware sets user context when a valid session is present
// and continues anonymously otherwise.
func OptionalAuthMiddleware(authService service.AuthService, sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c, sessions)
		if token == "" {
			c.Next()
			return
		}

		claims, err := authService.ValidateSessionToken(token)
		if err != nil {
			c.Next()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("userEmail", claims.Email)

		c.Next()
	}
}

// sessionToken prefers the cookie over the Authorization header.
func sessionToken(c *gin.Context, sessions *session.Manager) string {
	if token, ok := sessions.ReadToken(c); ok {
		return token
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
