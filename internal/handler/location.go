package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Rakib1514/tickto-server/internal/service"
)

// LocationHandler handles HTTP requests for location autocomplete.
type LocationHandler struct {
	locations *service.LocationService
}

// NewLocationHandler creates a new LocationHandler.
func NewLocationHandler(locations *service.LocationService) *LocationHandler {
	return &LocationHandler{locations: locations}
}

// Suggest handles GET /locations
func (h *LocationHandler) Suggest(c *gin.Context) {
	values, err := h.locations.Suggest(c.Request.Context(), service.SuggestParams{
		From: c.Query("from"),
		To:   c.Query("to"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if values == nil {
		values = []string{}
	}
	respondJSON(c, http.StatusOK, values)
}
