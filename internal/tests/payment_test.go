package tests

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Rakib1514/tickto-server/internal/domain"
	"github.com/Rakib1514/tickto-server/internal/service"
)

// ──────────────────────────────────────────────
// 5. PAYMENT INTENTS
// ──────────────────────────────────────────────

func TestCreateIntent_PersistsWithClientSecret(t *testing.T) {
	t.Parallel()

	paymentRepo := NewMockPaymentRepository()
	svc := service.NewPaymentService(paymentRepo, service.NewMockPaymentProvider())

	intent, err := svc.CreateIntent(context.Background(), service.CreateIntentRequest{
		UserID: "user-1",
		TripID: "trip-1",
		Amount: 850,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(intent.ClientSecret, "pi_") {
		t.Errorf("expected a provider client secret, got %q", intent.ClientSecret)
	}
	if intent.Currency != "usd" {
		t.Errorf("expected default currency usd, got %q", intent.Currency)
	}
	if intent.Status != domain.PaymentIntentStatusCreated {
		t.Errorf("expected a created intent, got %s", intent.Status)
	}
	if paymentRepo.CountIntents() != 1 {
		t.Error("expected the intent to be persisted")
	}
}

func TestCreateIntent_Validation(t *testing.T) {
	t.Parallel()

	svc := service.NewPaymentService(NewMockPaymentRepository(), service.NewMockPaymentProvider())

	cases := []struct {
		name string
		req  service.CreateIntentRequest
		want error
	}{
		{"missing user", service.CreateIntentRequest{Amount: 100}, service.ErrInvalidUserID},
		{"zero amount", service.CreateIntentRequest{UserID: "u"}, service.ErrInvalidPaymentAmount},
		{"negative amount", service.CreateIntentRequest{UserID: "u", Amount: -5}, service.ErrInvalidPaymentAmount},
	}

	for _, tc := range cases {
		if _, err := svc.CreateIntent(context.Background(), tc.req); !errors.Is(err, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

type failingProvider struct{ err error }

func (p failingProvider) CreateIntent(ctx context.Context, amount float64, currency string) (string, error) {
	return "", p.err
}

func TestCreateIntent_ProviderFailureNotPersisted(t *testing.T) {
	t.Parallel()

	paymentRepo := NewMockPaymentRepository()
	providerErr := errors.New("gateway unavailable")
	svc := service.NewPaymentService(paymentRepo, failingProvider{err: providerErr})

	_, err := svc.CreateIntent(context.Background(), service.CreateIntentRequest{UserID: "u", Amount: 100})
	if !errors.Is(err, providerErr) {
		t.Fatalf("expected the provider error, got %v", err)
	}
	if paymentRepo.CountIntents() != 0 {
		t.Error("expected no intent to be persisted on provider failure")
	}
}
