package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bankportal/payment-portal/internal/core"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// writeError maps core error kinds onto HTTP statuses.
// Storage and unexpected failures are logged and hidden behind fallback.
func writeError(c echo.Context, logger *slog.Logger, err error, fallback string) error {
	var vErr *core.ValidationError
	switch {
	case errors.As(err, &vErr):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: vErr.Error(), Details: vErr.Reasons})
	case errors.Is(err, core.ErrInvalidStatus):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid status transition"})
	case errors.Is(err, core.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: unauthorizedMessage(err)})
	case errors.Is(err, core.ErrForbidden):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "You do not have permission to perform this action"})
	case errors.Is(err, core.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Resource not found"})
	case errors.Is(err, core.ErrConflict):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "Account already exists"})
	}

	logger.ErrorContext(c.Request().Context(), fallback,
		"error", err,
		"method", c.Request().Method,
		"path", c.Path(),
	)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
}

func unauthorizedMessage(err error) string {
	if errors.Is(err, core.ErrInvalidCredentials) {
		return "Invalid account number or password."
	}
	return "Invalid token"
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}
