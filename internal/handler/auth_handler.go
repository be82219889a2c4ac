package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"invoice-dashboard-backend/internal/middleware"
	"invoice-dashboard-backend/internal/service"
	"invoice-dashboard-backend/internal/session"
)

// dashboardPath is where a successful sign-in lands.
const dashboardPath = "/dashboard"

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService service.AuthService
	sessions    *session.Manager
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService service.AuthService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
	}
}

// Login handles the sign-in form submission
// @Summary Login with email and password
// @Description Authenticate the submitted credentials, set the session cookie and redirect to the dashboard
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Success 303 "Redirect to the dashboard"
// @Failure 401 {object} model.ErrorResponse "Invalid credentials"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	creds := service.Credentials{
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
	}

	sess, err := h.authService.SignIn(c.Request.Context(), "credentials", creds)
	if err != nil {
		var signInErr *service.SignInError
		if errors.As(err, &signInErr) {
			switch signInErr.Type {
			case service.SignInErrorCredentials:
				respondUnauthorized(c, "Invalid credentials.")
			default:
				logError(c, "sign_in_failed", err, map[string]interface{}{
					"email": creds.Email,
				})
				respondInternalServerError(c, "Something went wrong.")
			}
			return
		}
		middleware.AbortWithError(c, err)
		return
	}

	h.sessions.Set(c, sess.Token, sess.ExpiresAt)
	c.Redirect(StatusSeeOther, dashboardPath)
}

// Register handles user registration with email and password
// @Summary Register a new user
// @Description Create a new user account with email and password and start a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration details"
// @Success 201 {object} map[string]interface{} "Registration successful"
// @Failure 400 {object} model.ErrorResponse "Bad request"
// @Failure 409 {object} model.ErrorResponse "User already exists"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		respondBadRequest(c, ErrInvalidInput)
		return
	}

	sess, err := h.authService.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			respondConflict(c, "User with this email already exists")
			return
		}
		logError(c, "registration_failed", err, map[string]interface{}{
			"email": req.Email,
		})
		respondInternalServerError(c, "Failed to register user")
		return
	}

	h.sessions.Set(c, sess.Token, sess.ExpiresAt)
	respondCreated(c, gin.H{
		"user":      sess.User,
		"expiresAt": sess.ExpiresAt,
	})
}

// Logout clears the session cookie
// @Summary Logout
// @Description Clear the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string "Logout successful"
// @Router /v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.Clear(c)
	respondOK(c, gin.H{
		"message": "Logout successful",
	})
}

// GetCurrentUser returns the current authenticated user
// @Summary Get current user
// @Description Get the currently authenticated user's information
// @Tags auth
// @Produce json
// @Success 200 {object} domain.User "User information"
// @Failure 401 {object} model.ErrorResponse "Unauthorized"
// @Failure 404 {object} model.ErrorResponse "User not found"
// @Router /v1/auth/me [get]
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	// Get user ID from context (set by auth middleware)
	userID, exists := c.Get("userID")
	if !exists {
		respondUnauthorized(c, "User not authenticated")
		return
	}

	user, err := h.authService.GetUserByID(c.Request.Context(), userID.(string))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondNotFound(c, "User not found")
			return
		}
		respondInternalServerError(c, "Failed to get user information")
		return
	}

	respondOK(c, user)
}

// RegisterRoutes registers auth routes
func (h *AuthHandler) RegisterRoutes(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	auth := router.Group("/v1/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)

		// Protected route - requires auth middleware
		auth.GET("/me", authMiddleware, h.GetCurrentUser)
	}
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
}
