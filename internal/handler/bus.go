package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Rakib1514/tickto-server/internal/domain"
	"github.com/Rakib1514/tickto-server/internal/repository"
)

// BusHandler handles HTTP requests for buses.
type BusHandler struct {
	busRepo repository.BusRepository
}

// NewBusHandler creates a new BusHandler.
func NewBusHandler(busRepo repository.BusRepository) *BusHandler {
	return &BusHandler{busRepo: busRepo}
}

// CreateBusRequest is the HTTP request body for registering a bus.
type CreateBusRequest struct {
	OperatorID  string `json:"operatorId"`
	Name        string `json:"name"`
	PlateNumber string `json:"plateNumber"`
	SeatCount   int    `json:"seatCount"`
}

// BusResponse is the HTTP response for bus data.
type BusResponse struct {
	ID          string `json:"id"`
	OperatorID  string `json:"operatorId"`
	Name        string `json:"name"`
	PlateNumber string `json:"plateNumber,omitempty"`
	SeatCount   int    `json:"seatCount,omitempty"`
}

func toBusResponse(bus *domain.Bus) BusResponse {
	return BusResponse{
		ID:          bus.ID,
		OperatorID:  bus.OperatorID,
		Name:        bus.Name,
		PlateNumber: bus.PlateNumber,
		SeatCount:   bus.SeatCount,
	}
}

// Create handles POST /v1/buses
func (h *BusHandler) Create(c *gin.Context) {
	var req CreateBusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body", Error: http.StatusText(http.StatusBadRequest)})
		return
	}

	if req.OperatorID == "" || req.Name == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "operatorId and name are required", Error: http.StatusText(http.StatusBadRequest)})
		return
	}

	bus := &domain.Bus{
		OperatorID:  req.OperatorID,
		Name:        req.Name,
		PlateNumber: req.PlateNumber,
		SeatCount:   req.SeatCount,
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.busRepo.Create(c.Request.Context(), bus); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toBusResponse(bus))
}

// Get handles GET /v1/buses/:id
func (h *BusHandler) Get(c *gin.Context) {
	bus, err := h.busRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toBusResponse(bus))
}

// ListByOperator handles GET /v1/buses?operatorId=
func (h *BusHandler) ListByOperator(c *gin.Context) {
	operatorID := c.Query("operatorId")
	if operatorID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "operatorId is required", Error: http.StatusText(http.StatusBadRequest)})
		return
	}

	buses, err := h.busRepo.GetByOperatorID(c.Request.Context(), operatorID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]BusResponse, 0, len(buses))
	for _, bus := range buses {
		response = append(response, toBusResponse(bus))
	}
	respondJSON(c, http.StatusOK, response)
}
