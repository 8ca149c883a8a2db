package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/identity"
	"github.com/markethub/backend/internal/infrastructure/auth"
)

// RegisterInput contains registration data
type RegisterInput struct {
	Email    string        `json:"email" binding:"required,email"`
	Name     string        `json:"name" binding:"required"`
	Password string        `json:"password" binding:"required,min=8"`
	Role     identity.Role `json:"role" binding:"required"`
}

// LoginInput contains login credentials
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the API-facing view of a user
type UserResponse struct {
	ID        uuid.UUID           `json:"id"`
	Email     string              `json:"email"`
	Name      string              `json:"name"`
	Role      identity.Role       `json:"role"`
	Status    identity.UserStatus `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
}

// ToUserResponse converts a domain user to its response form
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
}

// LoginResult bundles the authenticated user and their tokens
type LoginResult struct {
	User   UserResponse    `json:"user"`
	Tokens *auth.TokenPair `json:"tokens"`
}
