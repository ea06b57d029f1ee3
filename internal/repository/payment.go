package repository

import (
	"context"

	"github.com/Rakib1514/tickto-server/internal/domain"
)

// PaymentRepository defines the persistence operations for payment intents.
type PaymentRepository interface {
	// Create persists a new payment intent.
	Create(ctx context.Context, intent *domain.PaymentIntent) error

	// GetByID retrieves a payment intent by ID.
	GetByID(ctx context.Context, id string) (*domain.PaymentIntent, error)
}
