package repository

import (
	"context"

	"github.com/Rakib1514/tickto-server/internal/domain"
)

// UserRepository defines the persistence operations for users.
type UserRepository interface {
	// Create persists a new user.
	Create(ctx context.Context, user *domain.User) error

	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetAll retrieves all users.
	GetAll(ctx context.Context) ([]*domain.User, error)

	// SetRole overwrites a user's role flag.
	SetRole(ctx context.Context, email string, role domain.UserRole) error
}
