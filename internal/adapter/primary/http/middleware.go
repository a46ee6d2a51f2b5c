package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bankportal/payment-portal/internal/core"
)

const actorKey = "actor"

// ActorVerifier resolves a bearer token to the actor it was issued for
type ActorVerifier interface {
	Verify(token string) (core.Actor, error)
}

// Authenticate rejects requests without a valid bearer token and stores the actor on the context
func Authenticate(verifier ActorVerifier, logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Missing token"})
			}

			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid header format"})
			}

			actor, err := verifier.Verify(strings.TrimSpace(token))
			if err != nil {
				logger.DebugContext(c.Request().Context(), "token rejected", "error", err)
				return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid token"})
			}

			c.Set(actorKey, actor)
			return next(c)
		}
	}
}

func actorFrom(c echo.Context) (core.Actor, error) {
	actor, ok := c.Get(actorKey).(core.Actor)
	if !ok {
		return core.Actor{}, fmt.Errorf("%w: no actor on request", core.ErrUnauthorized)
	}
	return actor, nil
}
