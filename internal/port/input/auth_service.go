package input

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bankportal/payment-portal/internal/core"
)

// AuthService is an input port for registration and login
type AuthService interface {
	// Signup registers a new customer
	Signup(ctx context.Context, req SignupRequest) (*UserResponse, error)

	// Login checks credentials and issues an access token
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
}

// UserAdminService is an input port for managing portal users (admin only)
type UserAdminService interface {
	ListUsers(ctx context.Context, actor core.Actor) ([]UserResponse, error)
	PromoteUser(ctx context.Context, actor core.Actor, id uuid.UUID) (*UserResponse, error)
	DemoteUser(ctx context.Context, actor core.Actor, id uuid.UUID) (*UserResponse, error)
	DeleteUser(ctx context.Context, actor core.Actor, id uuid.UUID) error
}

// SignupRequest represents a customer registration
type SignupRequest struct {
	FullName      string
	IDNumber      string
	AccountNumber string
	Password      string
}

// LoginRequest represents a credential check
type LoginRequest struct {
	AccountNumber string
	Password      string
}

// UserResponse is the public view of a user; the password hash never leaves the core
type UserResponse struct {
	ID            uuid.UUID
	FullName      string
	IDNumber      string
	AccountNumber string
	Role          core.Role
	CreatedAt     time.Time
}

// LoginResponse carries the issued token and the caller's profile
type LoginResponse struct {
	Token     string
	ExpiresAt time.Time
	User      UserResponse
}

// NewUserResponse converts a core user
func NewUserResponse(u *core.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		FullName:      u.FullName,
		IDNumber:      u.IDNumber,
		AccountNumber: u.AccountNumber,
		Role:          u.Role,
		CreatedAt:     u.CreatedAt,
	}
}
