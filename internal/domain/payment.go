package domain

import "time"

// PaymentIntentStatus is the lifecycle status of a payment intent.
type PaymentIntentStatus string

const (
	PaymentIntentStatusCreated   PaymentIntentStatus = "CREATED"
	PaymentIntentStatusSucceeded PaymentIntentStatus = "SUCCEEDED"
	PaymentIntentStatusFailed    PaymentIntentStatus = "FAILED"
)

// PaymentIntent records an intent created against the external payment
// provider. The provider's client secret is handed to the caller and
// never interpreted by this service.
type PaymentIntent struct {
	ID           string
	UserID       string
	TripID       string
	Amount       float64
	Currency     string
	ClientSecret string
	Status       PaymentIntentStatus
	CreatedAt    time.Time
}
