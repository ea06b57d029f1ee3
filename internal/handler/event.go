package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Rakib1514/tickto-server/internal/domain"
	"github.com/Rakib1514/tickto-server/internal/repository"
)

// EventHandler handles HTTP requests for events.
type EventHandler struct {
	eventRepo repository.EventRepository
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(eventRepo repository.EventRepository) *EventHandler {
	return &EventHandler{eventRepo: eventRepo}
}

// CreateEventRequest is the HTTP request body for creating an event.
type CreateEventRequest struct {
	OrganizerID string    `json:"organizerId"`
	Title       string    `json:"title"`
	Venue       string    `json:"venue"`
	StartsAt    time.Time `json:"startsAt"`
	Price       float64   `json:"price"`
}

// EventResponse is the HTTP response for event data.
type EventResponse struct {
	ID          string  `json:"id"`
	OrganizerID string  `json:"organizerId"`
	Title       string  `json:"title"`
	Venue       string  `json:"venue,omitempty"`
	StartsAt    string  `json:"startsAt"`
	Price       float64 `json:"price,omitempty"`
}

func toEventResponse(event *domain.Event) EventResponse {
	return EventResponse{
		ID:          event.ID,
		OrganizerID: event.OrganizerID,
		Title:       event.Title,
		Venue:       event.Venue,
		StartsAt:    event.StartsAt.UTC().Format(time.RFC3339),
		Price:       event.Price,
	}
}

// Create handles POST /v1/events
func (h *EventHandler) Create(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body", Error: http.StatusText(http.StatusBadRequest)})
		return
	}

	if req.OrganizerID == "" || req.Title == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "organizerId and title are required", Error: http.StatusText(http.StatusBadRequest)})
		return
	}

	event := &domain.Event{
		OrganizerID: req.OrganizerID,
		Title:       req.Title,
		Venue:       req.Venue,
		StartsAt:    req.StartsAt,
		Price:       req.Price,
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.eventRepo.Create(c.Request.Context(), event); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toEventResponse(event))
}

// Get handles GET /v1/events/:id
func (h *EventHandler) Get(c *gin.Context) {
	event, err := h.eventRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toEventResponse(event))
}

// GetAll handles GET /v1/events
func (h *EventHandler) GetAll(c *gin.Context) {
	events, err := h.eventRepo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]EventResponse, 0, len(events))
	for _, event := range events {
		response = append(response, toEventResponse(event))
	}
	respondJSON(c, http.StatusOK, response)
}

// Delete handles DELETE /v1/events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	if err := h.eventRepo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "event deleted"})
}
