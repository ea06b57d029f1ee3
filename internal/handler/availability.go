package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Rakib1514/tickto-server/internal/domain"
	"github.com/Rakib1514/tickto-server/internal/service"
)

// staleHeader flags a response served after a failed reconciliation; the
// statuses backing it are the last ones successfully persisted.
const staleHeader = "X-Availability-Stale"

// AvailabilityHandler handles HTTP requests for trip availability.
type AvailabilityHandler struct {
	availability *service.AvailabilityService
}

// NewAvailabilityHandler creates a new AvailabilityHandler.
func NewAvailabilityHandler(availability *service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

// AvailableTripResponse is one row of the availability result.
type AvailableTripResponse struct {
	ID            string             `json:"id"`
	OrganizerID   string             `json:"organizerId"`
	Origin        string             `json:"origin"`
	Destination   string             `json:"destination"`
	DepartureTime string             `json:"departureTime"`
	ArrivalTime   string             `json:"arrivalTime"`
	Price         float64            `json:"price,omitempty"`
	SeatCount     int                `json:"seatCount,omitempty"`
	Status        string             `json:"status"`
	BusDetails    BusDetailsResponse `json:"busDetails"`
}

// BusDetailsResponse carries the joined bus record.
type BusDetailsResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PlateNumber string `json:"plateNumber,omitempty"`
	SeatCount   int    `json:"seatCount,omitempty"`
}

// Search handles GET /trips/available
func (h *AvailabilityHandler) Search(c *gin.Context) {
	result, err := h.availability.Search(c.Request.Context(), service.SearchParams{
		Origin:      c.Query("origin"),
		Destination: c.Query("destination"),
		Departure:   c.Query("departure"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if result.Stale {
		c.Header(staleHeader, "true")
	}

	response := make([]AvailableTripResponse, 0, len(result.Trips))
	for _, trip := range result.Trips {
		response = append(response, toAvailableTripResponse(trip))
	}
	respondJSON(c, http.StatusOK, response)
}

func toAvailableTripResponse(trip *domain.TripWithBus) AvailableTripResponse {
	return AvailableTripResponse{
		ID:            trip.ID,
		OrganizerID:   trip.OrganizerID,
		Origin:        string(trip.Origin),
		Destination:   string(trip.Destination),
		DepartureTime: trip.DepartureTime.UTC().Format(time.RFC3339),
		ArrivalTime:   trip.ArrivalTime.UTC().Format(time.RFC3339),
		Price:         trip.Price,
		SeatCount:     trip.SeatCount,
		Status:        string(trip.Status),
		BusDetails: BusDetailsResponse{
			ID:          trip.Bus.ID,
			Name:        trip.Bus.Name,
			PlateNumber: trip.Bus.PlateNumber,
			SeatCount:   trip.Bus.SeatCount,
		},
	}
}
