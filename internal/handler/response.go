package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Rakib1514/tickto-server/internal/repository"
	"github.com/Rakib1514/tickto-server/internal/service"
)

// ErrorResponse represents a structured error response.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status
// code. Server-side failures never leak internal detail.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)

	message := err.Error()
	if code >= http.StatusInternalServerError {
		message = "internal server error"
	}

	c.JSON(code, ErrorResponse{Message: message, Error: http.StatusText(code)})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidTripID),
		errors.Is(err, service.ErrInvalidBusID),
		errors.Is(err, service.ErrInvalidOrganizerID),
		errors.Is(err, service.ErrInvalidTimeWindow),
		errors.Is(err, service.ErrInvalidDepartureDate),
		errors.Is(err, service.ErrDirectionRequired),
		errors.Is(err, service.ErrBothDirections),
		errors.Is(err, service.ErrSearchTooShort),
		errors.Is(err, service.ErrInvalidPaymentAmount),
		errors.Is(err, service.ErrInvalidUserID),
		errors.Is(err, repository.ErrInvalidReference):
		return http.StatusBadRequest

	// Infrastructure failures
	case errors.Is(err, repository.ErrStoreUnavailable),
		errors.Is(err, service.ErrReconcileFailed):
		return http.StatusInternalServerError

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
