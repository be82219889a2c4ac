package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"invoice-dashboard-backend/internal/domain"
	"invoice-dashboard-backend/internal/repository"
	"invoice-dashboard-backend/internal/telemetry"
)

// Common errors
var (
	ErrUserAlreadyExists  = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

// Sign-in failure categories. The handler maps each recognized category to
// a fixed user-facing message; anything else it propagates untouched.
const (
	SignInErrorCredentials = "CredentialsSignin"
	SignInErrorCallback    = "CallbackRouteError"
)

// SignInError is a categorized sign-in failure.
type SignInError struct {
	Type string
	Err  error
}

func (e *SignInError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Type, e.Err)
	}
	return e.Type
}

func (e *SignInError) Unwrap() error {
	return e.Err
}

// Credentials are the fields of the sign-in form.
type Credentials struct {
	Email    string
	Password string
}

// Session is an authenticated session: the signed token, its subject and
// its expiry.
type Session struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// Claims represents session token claims
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// AuthService handles authentication operations
type AuthService interface {
	// SignIn authenticates against the named provider. Only the
	// "credentials" provider is supported. Failures are returned as a
	// *SignInError carrying their category.
	SignIn(ctx context.Context, provider string, creds Credentials) (*Session, error)

	// Register creates a new user with email and password and signs
	// them in.
	Register(ctx context.Context, email, password, name string) (*Session, error)

	// ValidateSessionToken validates and parses a session token.
	ValidateSessionToken(tokenString string) (*Claims, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// authService implements AuthService
type authService struct {
	userRepo   repository.UserRepository
	jwtSecret  []byte
	sessionTTL time.Duration
	metrics    *telemetry.Metrics
}

// AuthServiceConfig holds configuration for the auth service
type AuthServiceConfig struct {
	UserRepo   repository.UserRepository
	JWTSecret  string
	SessionTTL time.Duration
	Metrics    *telemetry.Metrics
}

// NewAuthService creates a new auth service
func NewAuthService(config AuthServiceConfig) AuthService {
	return &authService{
		userRepo:   config.UserRepo,
		jwtSecret:  []byte(config.JWTSecret),
		sessionTTL: config.SessionTTL,
		metrics:    config.Metrics,
	}
}

// SignIn authenticates a user with the named provider. Identity-shaped
// failures (unknown email, missing hash, wrong password) are categorized
// as CredentialsSignin; infrastructure failures as CallbackRouteError.
func (s *authService) SignIn(ctx context.Context, provider string, creds Credentials) (*Session, error) {
	if provider != "credentials" {
		s.metrics.ObserveSignIn("error")
		return nil, &SignInError{Type: SignInErrorCallback, Err: fmt.Errorf("unknown provider %q", provider)}
	}

	user, err := s.userRepo.GetUserByEmailWithPassword(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.metrics.ObserveSignIn("invalid_credentials")
			return nil, &SignInError{Type: SignInErrorCredentials, Err: ErrInvalidCredentials}
		}
		s.metrics.ObserveSignIn("error")
		return nil, &SignInError{Type: SignInErrorCallback, Err: err}
	}

	// An account may exist without a password set
	if user.PasswordHash == "" {
		s.metrics.ObserveSignIn("invalid_credentials")
		return nil, &SignInError{Type: SignInErrorCredentials, Err: ErrInvalidCredentials}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		s.metrics.ObserveSignIn("invalid_credentials")
		return nil, &SignInError{Type: SignInErrorCredentials, Err: ErrInvalidCredentials}
	}

	token, expiresAt, err := s.generateSessionToken(user)
	if err != nil {
		s.metrics.ObserveSignIn("error")
		return nil, &SignInError{Type: SignInErrorCallback, Err: err}
	}

	s.metrics.ObserveSignIn("success")
	return &Session{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// Register creates a new user with email and password
func (s *authService) Register(ctx context.Context, email, password, name string) (*Session, error) {
	// Check if user already exists
	existingUser, err := s.userRepo.GetUserByEmail(ctx, email)
	if err == nil && existingUser != nil {
		return nil, ErrUserAlreadyExists
	}

	// Hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, expiresAt, err := s.generateSessionToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	return &Session{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// generateSessionToken signs an HS256 session token for the user
func (s *authService) generateSessionToken(user *domain.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.sessionTTL)
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return signed, expiresAt, nil
}

// ValidateSessionToken validates and parses a session token
func (s *authService) ValidateSessionToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// GetUserByID retrieves a user by ID
func (s *authService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
