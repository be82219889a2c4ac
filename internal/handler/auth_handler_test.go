package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoice-dashboard-backend/internal/domain"
	"invoice-dashboard-backend/internal/middleware"
	"invoice-dashboard-backend/internal/service"
	"invoice-dashboard-backend/internal/session"
)

type fakeAuthService struct {
	session     *service.Session
	signInErr   error
	registerErr error
	user        *domain.User
	userErr     error

	lastProvider string
	lastCreds    service.Credentials
}

func (f *fakeAuthService) SignIn(ctx context.Context, provider string, creds service.Credentials) (*service.Session, error) {
	_ = ctx
	f.lastProvider = provider
	f.lastCreds = creds
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	return f.session, nil
}

func (f *fakeAuthService) Register(ctx context.Context, email, password, name string) (*service.Session, error) {
	_ = ctx
	_ = email
	_ = password
	_ = name
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return f.session, nil
}

func (f *fakeAuthService) ValidateSessionToken(tokenString string) (*service.Claims, error) {
	_ = tokenString
	return nil, errors.New("not implemented")
}

func (f *fakeAuthService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	_ = ctx
	_ = userID
	if f.userErr != nil {
		return nil, f.userErr
	}
	return f.user, nil
}

func newAuthTestRouter(svc service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandling())
	sessions := session.NewManager(session.DefaultCookieName, false)
	NewAuthHandler(svc, sessions).RegisterRoutes(router, func(c *gin.Context) {
		c.Set("userID", "user-1")
		c.Next()
	})
	return router
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == session.DefaultCookieName {
			return cookie
		}
	}
	return nil
}

func validSession() *service.Session {
	return &service.Session{
		User:      &domain.User{ID: "user-1", Name: "User", Email: "user@nextmail.com"},
		Token:     "session-token",
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func TestLoginHandlerSetsCookieAndRedirects(t *testing.T) {
	svc := &fakeAuthService{session: validSession()}
	router := newAuthTestRouter(svc)

	w := postForm(router, http.MethodPost, "/v1/auth/login", url.Values{
		"email":    {"user@nextmail.com"},
		"password": {"123456"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, dashboardPath, w.Header().Get("Location"))
	assert.Equal(t, "credentials", svc.lastProvider)
	assert.Equal(t, "user@nextmail.com", svc.lastCreds.Email)

	cookie := sessionCookie(t, w)
	require.NotNil(t, cookie, "session cookie must be set")
	assert.Equal(t, "session-token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Positive(t, cookie.MaxAge)
}

func TestLoginHandlerInvalidCredentials(t *testing.T) {
	svc := &fakeAuthService{
		signInErr: &service.SignInError{
			Type: service.SignInErrorCredentials,
			Err:  service.ErrInvalidCredentials,
		},
	}
	router := newAuthTestRouter(svc)

	w := postForm(router, http.MethodPost, "/v1/auth/login", url.Values{
		"email":    {"user@nextmail.com"},
		"password": {"wrong"},
	})

	require.Equal(t, http.StatusUnauthorized, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Invalid credentials.", body["message"])
	assert.Nil(t, sessionCookie(t, w))
}

func TestLoginHandlerInfrastructureFailure(t *testing.T) {
	svc := &fakeAuthService{
		signInErr: &service.SignInError{
			Type: service.SignInErrorCallback,
			Err:  errors.New("connection refused"),
		},
	}
	router := newAuthTestRouter(svc)

	w := postForm(router, http.MethodPost, "/v1/auth/login", url.Values{
		"email":    {"user@nextmail.com"},
		"password": {"123456"},
	})

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Something went wrong.", body["message"])
}

func TestLoginHandlerUnexpectedErrorPropagates(t *testing.T) {
	svc := &fakeAuthService{signInErr: errors.New("boom")}
	router := newAuthTestRouter(svc)

	w := postForm(router, http.MethodPost, "/v1/auth/login", url.Values{
		"email":    {"user@nextmail.com"},
		"password": {"123456"},
	})

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Internal server error", body["message"])
}

func TestLogoutHandlerClearsCookie(t *testing.T) {
	router := newAuthTestRouter(&fakeAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	cookie := sessionCookie(t, w)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestRegisterHandlerCreatesSession(t *testing.T) {
	svc := &fakeAuthService{session: validSession()}
	router := newAuthTestRouter(svc)

	payload := `{"email":"new@nextmail.com","password":"supersecret","name":"New User"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/register", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, sessionCookie(t, w))
}

func TestRegisterHandlerDuplicateEmail(t *testing.T) {
	svc := &fakeAuthService{registerErr: service.ErrUserAlreadyExists}
	router := newAuthTestRouter(svc)

	payload := `{"email":"user@nextmail.com","password":"supersecret","name":"User"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/register", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetCurrentUserHandler(t *testing.T) {
	svc := &fakeAuthService{
		user: &domain.User{ID: "user-1", Name: "User", Email: "user@nextmail.com"},
	}
	router := newAuthTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "user@nextmail.com", body["email"])
	assert.NotContains(t, w.Body.String(), "password")
}

func TestGetCurrentUserHandlerNotFound(t *testing.T) {
	svc := &fakeAuthService{userErr: service.ErrUserNotFound}
	router := newAuthTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
