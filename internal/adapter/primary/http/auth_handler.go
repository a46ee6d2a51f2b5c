package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bankportal/payment-portal/internal/port/input"
)

// AuthHandler serves signup and login
type AuthHandler struct {
	authService input.AuthService
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService input.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

// SignupRequest represents the HTTP signup body
type SignupRequest struct {
	FullName      string `json:"full_name"`
	IDNumber      string `json:"id_number"`
	AccountNumber string `json:"account_number"`
	Password      string `json:"password"`
}

// LoginRequest represents the HTTP login body
type LoginRequest struct {
	AccountNumber string `json:"account_number"`
	Password      string `json:"password"`
}

// UserResponse is the public JSON view of a user
type UserResponse struct {
	ID            string `json:"id"`
	FullName      string `json:"full_name"`
	IDNumber      string `json:"id_number"`
	AccountNumber string `json:"account_number"`
	Role          string `json:"role"`
	CreatedAt     string `json:"created_at"`
}

// LoginResponse is returned on a successful login
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expires_at"`
	User      UserResponse `json:"user"`
}

func toUserResponse(u *input.UserResponse) UserResponse {
	return UserResponse{
		ID:            u.ID.String(),
		FullName:      u.FullName,
		IDNumber:      u.IDNumber,
		AccountNumber: u.AccountNumber,
		Role:          string(u.Role),
		CreatedAt:     u.CreatedAt.Format(time.RFC3339),
	}
}

// Signup registers a customer
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.authService.Signup(c.Request().Context(), input.SignupRequest{
		FullName:      req.FullName,
		IDNumber:      req.IDNumber,
		AccountNumber: req.AccountNumber,
		Password:      req.Password,
	})
	if err != nil {
		return writeError(c, h.logger, err, "Registration failed")
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully",
		"user":    toUserResponse(user),
	})
}

// Login exchanges credentials for a bearer token
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.authService.Login(c.Request().Context(), input.LoginRequest{
		AccountNumber: req.AccountNumber,
		Password:      req.Password,
	})
	if err != nil {
		return writeError(c, h.logger, err, "Login failed")
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Token:     resp.Token,
		ExpiresAt: resp.ExpiresAt.Format(time.RFC3339),
		User:      toUserResponse(&resp.User),
	})
}
