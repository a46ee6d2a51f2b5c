package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/bankportal/payment-portal/internal/core"
	"github.com/bankportal/payment-portal/internal/port/input"
)

// AdminHandler serves the staff dashboard and user management
type AdminHandler struct {
	reporting input.ReportingService
	users     input.UserAdminService
	payments  *PaymentHandler
	logger    *slog.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(reporting input.ReportingService, users input.UserAdminService, payments *PaymentHandler, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		reporting: reporting,
		users:     users,
		payments:  payments,
		logger:    logger,
	}
}

// MetricsResponse holds per-status counts
type MetricsResponse struct {
	Pending   int64 `json:"pending"`
	Verified  int64 `json:"verified"`
	Submitted int64 `json:"submitted"`
	Rejected  int64 `json:"rejected"`
	Total     int64 `json:"total"`
}

// Dashboard returns payment counts per status
func (h *AdminHandler) Dashboard(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to load metrics")
	}

	m, err := h.reporting.DashboardMetrics(c.Request().Context(), actor)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to load metrics")
	}

	return c.JSON(http.StatusOK, map[string]MetricsResponse{
		"metrics": {
			Pending:   m.Pending,
			Verified:  m.Verified,
			Submitted: m.Submitted,
			Rejected:  m.Rejected,
			Total:     m.Total,
		},
	})
}

// PaymentsSummary lists every payment with its owner
func (h *AdminHandler) PaymentsSummary(c echo.Context) error {
	return h.payments.ListAllPayments(c)
}

// ListUsers lists every portal user
func (h *AdminHandler) ListUsers(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to fetch users")
	}

	users, err := h.users.ListUsers(c.Request().Context(), actor)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to fetch users")
	}

	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// PromoteUser grants the admin role
func (h *AdminHandler) PromoteUser(c echo.Context) error {
	return h.changeRole(c, h.users.PromoteUser, "Failed to promote user")
}

// DemoteUser resets a user to customer
func (h *AdminHandler) DemoteUser(c echo.Context) error {
	return h.changeRole(c, h.users.DemoteUser, "Failed to demote user")
}

type roleChange func(ctx context.Context, actor core.Actor, id uuid.UUID) (*input.UserResponse, error)

func (h *AdminHandler) changeRole(c echo.Context, change roleChange, fallback string) error {
	actor, err := actorFrom(c)
	if err != nil {
		return writeError(c, h.logger, err, fallback)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	user, err := change(c.Request().Context(), actor, id)
	if err != nil {
		return writeError(c, h.logger, err, fallback)
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// DeleteUser removes a user
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to delete user")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	if err := h.users.DeleteUser(c.Request().Context(), actor, id); err != nil {
		return writeError(c, h.logger, err, "Failed to delete user")
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "User deleted"})
}
