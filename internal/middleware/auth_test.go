package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoice-dashboard-backend/internal/domain"
	"invoice-dashboard-backend/internal/service"
	"invoice-dashboard-backend/internal/session"
)

// fakeAuthService validates tokens against a single accepted value.
type fakeAuthService struct {
	claims    *service.Claims
	err       error
	lastToken string
}

func (f *fakeAuthService) SignIn(ctx context.Context, provider string, creds service.Credentials) (*service.Session, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeAuthService) Register(ctx context.Context, email, password, name string) (*service.Session, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeAuthService) ValidateSessionToken(token string) (*service.Claims, error) {
	f.lastToken = token
	if f.err != nil {
		return nil, f.err
	}
	return f.claims, nil
}

func (f *fakeAuthService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return nil, service.ErrUserNotFound
}

func newProtectedRouter(auth service.AuthService, optional bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	sessions := session.NewManager(session.DefaultCookieName, false)

	mw := AuthMiddleware(auth, sessions)
	if optional {
		mw = OptionalAuthMiddleware(auth, sessions)
	}

	router := gin.New()
	router.GET("/protected", mw, func(c *gin.Context) {
		userID, _ := c.Get("userID")
		email, _ := c.Get("userEmail")
		c.JSON(http.StatusOK, gin.H{"userID": userID, "email": email})
	})
	return router
}

func validClaims() *service.Claims {
	return &service.Claims{UserID: "user-1", Email: "user@nextmail.com"}
}

func TestAuthMiddlewareRejectsAnonymousRequests(t *testing.T) {
	router := newProtectedRouter(&fakeAuthService{claims: validClaims()}, false)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	require.Equal(t, http.StatusUnauthorized, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Unauthorized", body["status"])
	assert.Equal(t, "Authentication required", body["message"])
}

func TestAuthMiddlewareRejectsInvalidToken(t *testing.T) {
	router := newProtectedRouter(&fakeAuthService{err: errors.New("token is expired")}, false)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: "stale"})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Invalid or expired session", body["message"])
}

func TestAuthMiddlewareAcceptsSessionCookie(t *testing.T) {
	auth := &fakeAuthService{claims: validClaims()}
	router := newProtectedRouter(auth, false)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: "cookie-token"})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cookie-token", auth.lastToken)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "user-1", body["userID"])
	assert.Equal(t, "user@nextmail.com", body["email"])
}

func TestAuthMiddlewareAcceptsBearerHeader(t *testing.T) {
	auth := &fakeAuthService{claims: validClaims()}
	router := newProtectedRouter(auth, false)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer header-token")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "header-token", auth.lastToken)
}

func TestAuthMiddlewarePrefersCookieOverHeader(t *testing.T) {
	auth := &fakeAuthService{claims: validClaims()}
	router := newProtectedRouter(auth, false)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: "cookie-token"})
	req.Header.Set("Authorization", "Bearer header-token")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cookie-token", auth.lastToken)
}

func TestAuthMiddlewareRejectsMalformedAuthorizationHeader(t *testing.T) {
	auth := &fakeAuthService{claims: validClaims()}
	router := newProtectedRouter(auth, false)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuthContinuesAnonymously(t *testing.T) {
	router := newProtectedRouter(&fakeAuthService{err: errors.New("token is expired")}, true)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: "stale"})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Nil(t, body["userID"])
}
