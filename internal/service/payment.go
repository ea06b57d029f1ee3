package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Rakib1514/tickto-server/internal/domain"
	"github.com/Rakib1514/tickto-server/internal/repository"
)

// PaymentProvider is the interface for the external payment gateway. The
// gateway is opaque to this service: it returns a client secret the
// frontend completes the payment with, and nothing here interprets it.
type PaymentProvider interface {
	CreateIntent(ctx context.Context, amount float64, currency string) (clientSecret string, err error)
}

// MockPaymentProvider is a mock implementation of PaymentProvider for
// development and testing.
type MockPaymentProvider struct{}

// NewMockPaymentProvider creates a new mock payment provider.
func NewMockPaymentProvider() *MockPaymentProvider {
	return &MockPaymentProvider{}
}

// CreateIntent returns a synthetic client secret. Always succeeds.
func (p *MockPaymentProvider) CreateIntent(ctx context.Context, amount float64, currency string) (string, error) {
	return fmt.Sprintf("pi_%s_secret_%s", uuid.NewString()[:8], uuid.NewString()[:16]), nil
}

// PaymentService creates payment intents against the external provider
// and records them.
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	provider    PaymentProvider
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(paymentRepo repository.PaymentRepository, provider PaymentProvider) *PaymentService {
	return &PaymentService{paymentRepo: paymentRepo, provider: provider}
}

// CreateIntentRequest contains the parameters for creating a payment intent.
type CreateIntentRequest struct {
	UserID   string
	TripID   string
	Amount   float64
	Currency string
}

// CreateIntent asks the provider for a client secret and persists the
// resulting intent.
func (s *PaymentService) CreateIntent(ctx context.Context, req CreateIntentRequest) (*domain.PaymentIntent, error) {
	if req.UserID == "" {
		return nil, ErrInvalidUserID
	}
	if req.Amount <= 0 {
		return nil, ErrInvalidPaymentAmount
	}
	currency := req.Currency
	if currency == "" {
		currency = "usd"
	}

	secret, err := s.provider.CreateIntent(ctx, req.Amount, currency)
	if err != nil {
		return nil, err
	}

	intent := &domain.PaymentIntent{
		UserID:       req.UserID,
		TripID:       req.TripID,
		Amount:       req.Amount,
		Currency:     currency,
		ClientSecret: secret,
		Status:       domain.PaymentIntentStatusCreated,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.paymentRepo.Create(ctx, intent); err != nil {
		return nil, err
	}
	return intent, nil
}
