package session

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// DefaultCookieName is the session cookie issued after sign-in.
const DefaultCookieName = "_sid"

// Manager reads and writes the session cookie.
type Manager struct {
	cookieName string
	secure     bool
}

// NewManager creates a session manager. An empty cookie name falls back to
// DefaultCookieName.
func NewManager(cookieName string, secure bool) *Manager {
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	return &Manager{cookieName: cookieName, secure: secure}
}

// ReadToken returns the session token from the request cookie, if present.
func (m *Manager) ReadToken(c *gin.Context) (string, bool) {
	value, err := c.Cookie(m.cookieName)
	if err != nil || strings.TrimSpace(value) == "" {
		return "", false
	}
	return value, true
}

// Set writes the session cookie with a max age derived from the token
// expiry. The cookie is HttpOnly and SameSite Lax.
func (m *Manager) Set(c *gin.Context, value string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge < 0 {
		maxAge = 0
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, value, maxAge, "/", "", m.secure, true)
}

// Clear expires the session cookie.
func (m *Manager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, "", -1, "/", "", m.secure, true)
}
