package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Rakib1514/tickto-server/internal/domain"
	"github.com/Rakib1514/tickto-server/internal/repository"
)

// UserHandler handles HTTP requests for users.
type UserHandler struct {
	userRepo repository.UserRepository
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userRepo repository.UserRepository) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

// RegisterRequest is the HTTP request body for user registration.
type RegisterRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserResponse is the HTTP response for user data.
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func toUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  string(user.Role),
	}
}

// Register handles POST /v1/users/register
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body", Error: http.StatusText(http.StatusBadRequest)})
		return
	}

	if req.Name == "" || req.Email == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "name and email are required", Error: http.StatusText(http.StatusBadRequest)})
		return
	}

	// Registration is idempotent on email.
	existing, err := h.userRepo.GetByEmail(c.Request.Context(), req.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		respondError(c, err)
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{
			"message": "user already registered",
			"user":    toUserResponse(existing),
		})
		return
	}

	user := &domain.User{
		Name:      req.Name,
		Email:     req.Email,
		Role:      domain.UserRoleUser,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.userRepo.Create(c.Request.Context(), user); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toUserResponse(user))
}

// GetAll handles GET /v1/users
func (h *UserHandler) GetAll(c *gin.Context) {
	users, err := h.userRepo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]UserResponse, 0, len(users))
	for _, user := range users {
		response = append(response, toUserResponse(user))
	}
	respondJSON(c, http.StatusOK, response)
}

// GetByEmail handles GET /v1/users/:email
func (h *UserHandler) GetByEmail(c *gin.Context) {
	user, err := h.userRepo.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toUserResponse(user))
}

// PromoteRequest is the HTTP request body for changing a role flag.
type PromoteRequest struct {
	Role string `json:"role"`
}

// SetRole handles PATCH /v1/users/:email/role
func (h *UserHandler) SetRole(c *gin.Context) {
	var req PromoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body", Error: http.StatusText(http.StatusBadRequest)})
		return
	}

	role := domain.UserRole(req.Role)
	switch role {
	case domain.UserRoleUser, domain.UserRoleOperator, domain.UserRoleAdmin:
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "unknown role", Error: http.StatusText(http.StatusBadRequest)})
		return
	}

	if err := h.userRepo.SetRole(c.Request.Context(), c.Param("email"), role); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "role updated"})
}
