package repository

import (
	"context"

	"github.com/Rakib1514/tickto-server/internal/domain"
)

// BusRepository defines the persistence operations for buses.
type BusRepository interface {
	// Create persists a new bus.
	Create(ctx context.Context, bus *domain.Bus) error

	// GetByID retrieves a bus by ID.
	GetByID(ctx context.Context, id string) (*domain.Bus, error)

	// GetByOperatorID retrieves all buses owned by an operator.
	GetByOperatorID(ctx context.Context, operatorID string) ([]*domain.Bus, error)
}
