package repository

import (
	"context"

	"invoice-dashboard-backend/internal/domain"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByEmailWithPassword(ctx context.Context, email string) (*domain.User, error)
}
