package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Rakib1514/tickto-server/internal/domain"
	"github.com/Rakib1514/tickto-server/internal/service"
)

// TripHandler handles HTTP requests for operator trip management.
type TripHandler struct {
	tripService *service.TripService
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(tripService *service.TripService) *TripHandler {
	return &TripHandler{tripService: tripService}
}

// CreateTripRequest is the HTTP request body for posting a trip.
type CreateTripRequest struct {
	OrganizerID   string    `json:"organizerId"`
	BusID         string    `json:"busId"`
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	DepartureTime time.Time `json:"departureTime"`
	ArrivalTime   time.Time `json:"arrivalTime"`
	Price         float64   `json:"price"`
	SeatCount     int       `json:"seatCount"`
}

// TripResponse is the HTTP response for trip operations.
type TripResponse struct {
	ID            string  `json:"id"`
	OrganizerID   string  `json:"organizerId"`
	BusID         string  `json:"busId"`
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	DepartureTime string  `json:"departureTime"`
	ArrivalTime   string  `json:"arrivalTime"`
	Price         float64 `json:"price,omitempty"`
	SeatCount     int     `json:"seatCount,omitempty"`
	Status        string  `json:"status"`
}

func toTripResponse(trip *domain.Trip) TripResponse {
	return TripResponse{
		ID:            trip.ID,
		OrganizerID:   trip.OrganizerID,
		BusID:         trip.BusID,
		Origin:        string(trip.Origin),
		Destination:   string(trip.Destination),
		DepartureTime: trip.DepartureTime.UTC().Format(time.RFC3339),
		ArrivalTime:   trip.ArrivalTime.UTC().Format(time.RFC3339),
		Price:         trip.Price,
		SeatCount:     trip.SeatCount,
		Status:        string(trip.Status),
	}
}

// Create handles POST /v1/trips
func (h *TripHandler) Create(c *gin.Context) {
	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body", Error: http.StatusText(http.StatusBadRequest)})
		return
	}

	trip, err := h.tripService.CreateTrip(c.Request.Context(), service.CreateTripRequest{
		OrganizerID:   req.OrganizerID,
		BusID:         req.BusID,
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
		Price:         req.Price,
		SeatCount:     req.SeatCount,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toTripResponse(trip))
}

// Get handles GET /v1/trips/:id
func (h *TripHandler) Get(c *gin.Context) {
	trip, err := h.tripService.GetTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTripResponse(trip))
}

// List handles GET /v1/trips
func (h *TripHandler) List(c *gin.Context) {
	trips, err := h.tripService.ListTrips(c.Request.Context(), c.Query("organizerId"))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]TripResponse, 0, len(trips))
	for _, trip := range trips {
		response = append(response, toTripResponse(trip))
	}
	respondJSON(c, http.StatusOK, response)
}

// Update handles PATCH /v1/trips/:id
func (h *TripHandler) Update(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body", Error: http.StatusText(http.StatusBadRequest)})
		return
	}

	trip, err := h.tripService.UpdateTrip(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTripResponse(trip))
}
