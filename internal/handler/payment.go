package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Rakib1514/tickto-server/internal/service"
)

// PaymentHandler handles HTTP requests for payment intents.
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// CreateIntentRequest is the HTTP request body for creating a payment intent.
type CreateIntentRequest struct {
	UserID   string  `json:"userId"`
	TripID   string  `json:"tripId"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// PaymentIntentResponse is the HTTP response for a created intent. The
// client secret is opaque; the frontend hands it to the gateway.
type PaymentIntentResponse struct {
	ID           string  `json:"id"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
	ClientSecret string  `json:"clientSecret"`
	Status       string  `json:"status"`
}

// CreateIntent handles POST /v1/payments/intent
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var req CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body", Error: http.StatusText(http.StatusBadRequest)})
		return
	}

	intent, err := h.paymentService.CreateIntent(c.Request.Context(), service.CreateIntentRequest{
		UserID:   req.UserID,
		TripID:   req.TripID,
		Amount:   req.Amount,
		Currency: req.Currency,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, PaymentIntentResponse{
		ID:           intent.ID,
		Amount:       intent.Amount,
		Currency:     intent.Currency,
		ClientSecret: intent.ClientSecret,
		Status:       string(intent.Status),
	})
}
