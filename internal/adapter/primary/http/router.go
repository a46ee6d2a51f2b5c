package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/bankportal/payment-portal/internal/config"
)

// Handlers groups the primary adapters mounted by NewRouter
type Handlers struct {
	Auth     *AuthHandler
	Payments *PaymentHandler
	Admin    *AdminHandler
}

// NewRouter builds the echo instance with the portal's middleware chain and routes
func NewRouter(cfg config.HTTPConfig, h Handlers, verifier ActorVerifier, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"remote_ip", v.RemoteIP,
			}
			if v.Error != nil {
				logger.WarnContext(c.Request().Context(), "request failed", append(attrs, "error", v.Error)...)
				return nil
			}
			logger.InfoContext(c.Request().Context(), "request", attrs...)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "no-referrer",
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	if cfg.BodyLimit != "" {
		e.Use(middleware.BodyLimit(cfg.BodyLimit))
	}
	if cfg.RateLimit > 0 && cfg.RateWindow > 0 {
		e.Use(middleware.RateLimiterWithConfig(rateLimiterConfig(cfg)))
	}

	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/signup", h.Auth.Signup)
	auth.POST("/login", h.Auth.Login)

	authn := Authenticate(verifier, logger)

	payments := api.Group("/payments", authn)
	payments.POST("", h.Payments.CreatePayment)
	payments.GET("/history", h.Payments.ListOwnPayments)
	payments.GET("/all", h.Payments.ListAllPayments)
	payments.GET("/:id", h.Payments.GetPayment)
	payments.GET("/:id/events", h.Payments.ListPaymentEvents)
	payments.PUT("/:id/status", h.Payments.UpdateStatus)

	admin := api.Group("/admin", authn)
	admin.GET("/dashboard", h.Admin.Dashboard)
	admin.GET("/payments/summary", h.Admin.PaymentsSummary)
	admin.GET("/users", h.Admin.ListUsers)
	admin.DELETE("/users/:id", h.Admin.DeleteUser)
	admin.POST("/users/:id/promote", h.Admin.PromoteUser)
	admin.POST("/users/:id/demote", h.Admin.DemoteUser)

	api.GET("/system/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	return e
}

// rateLimiterConfig spreads RateLimit requests over RateWindow per client IP
func rateLimiterConfig(cfg config.HTTPConfig) middleware.RateLimiterConfig {
	perSecond := rate.Limit(float64(cfg.RateLimit) / cfg.RateWindow.Seconds())
	return middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      perSecond,
			Burst:     cfg.RateLimit,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, ErrorResponse{Error: "Unable to identify client"})
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "Too many requests, please try again later."})
		},
	}
}
