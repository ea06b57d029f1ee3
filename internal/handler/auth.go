package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Rakib1514/tickto-server/internal/middleware"
	"github.com/Rakib1514/tickto-server/internal/repository"
)

// AuthHandler issues access tokens. Verification lives in the middleware
// package; the rest of the service treats tokens as opaque.
type AuthHandler struct {
	userRepo repository.UserRepository
	secret   string
	tokenTTL time.Duration
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userRepo repository.UserRepository, secret string, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{userRepo: userRepo, secret: secret, tokenTTL: tokenTTL}
}

// TokenRequest is the HTTP request body for issuing a token.
type TokenRequest struct {
	Email string `json:"email"`
}

// IssueToken handles POST /v1/auth/token
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "email is required", Error: http.StatusText(http.StatusBadRequest)})
		return
	}

	user, err := h.userRepo.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := middleware.GenerateToken(user, h.secret, h.tokenTTL)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
