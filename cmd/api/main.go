package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/bankportal/payment-portal/internal/adapter/primary/http"
	"github.com/bankportal/payment-portal/internal/adapter/secondary/database"
	"github.com/bankportal/payment-portal/internal/adapter/secondary/messaging"
	"github.com/bankportal/payment-portal/internal/adapter/secondary/token"
	"github.com/bankportal/payment-portal/internal/config"
	"github.com/bankportal/payment-portal/internal/constant/model/db"
	"github.com/bankportal/payment-portal/internal/core/service"
	"github.com/bankportal/payment-portal/internal/logging"
	"github.com/bankportal/payment-portal/internal/port/output"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.Logging)
	slog.SetDefault(logger)

	if cfg.Auth.Ephemeral {
		logger.Warn("JWT_SECRET not set, using an ephemeral secret; tokens will not survive a restart")
	}

	// Initialize secondary adapter: Database
	opts := db.DefaultOptions()
	opts.Logger = logger
	dbConn, err := db.NewDB(cfg.DatabaseURL, opts)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Initialize secondary adapters: Repositories and Messaging (implement output ports)
	paymentRepo := database.NewGormPaymentRepository(dbConn.DB)
	userRepo := database.NewGormUserRepository(dbConn.DB)
	eventRepo := database.NewGormPaymentEventRepository(dbConn.DB)

	var msgClient output.PaymentMessaging = messaging.Disabled{Logger: logger}
	if cfg.RabbitMQURL != "" {
		msgClient, err = messaging.NewRabbitMQClient(cfg.RabbitMQURL, logger)
		if err != nil {
			logger.Error("failed to connect to RabbitMQ", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Warn("RABBITMQ_URL not set, payment events will not be published")
	}
	defer msgClient.Close()

	issuer, err := token.NewJWTIssuer(cfg.Auth.SecretKey, cfg.Auth.TokenTTL)
	if err != nil {
		logger.Error("failed to create token issuer", "error", err)
		os.Exit(1)
	}

	// Initialize core services (implement input ports)
	paymentService := service.NewPaymentService(paymentRepo, userRepo, msgClient, eventRepo, logger)
	reportingService := service.NewReportingService(paymentRepo)
	authService := service.NewAuthService(userRepo, issuer, logger)
	userAdminService := service.NewUserAdminService(userRepo, logger)

	// Initialize primary adapters: HTTP handlers (use input ports)
	paymentHandler := httpadapter.NewPaymentHandler(paymentService, logger)
	e := httpadapter.NewRouter(cfg.HTTP, httpadapter.Handlers{
		Auth:     httpadapter.NewAuthHandler(authService, logger),
		Payments: paymentHandler,
		Admin:    httpadapter.NewAdminHandler(reportingService, userAdminService, paymentHandler, logger),
	}, issuer, logger)

	addr := fmt.Sprintf(":%s", cfg.Port)
	go func() {
		var err error
		if cfg.HTTP.TLSCertFile != "" && cfg.HTTP.TLSKeyFile != "" {
			logger.Info("starting API server", "addr", addr, "tls", true)
			err = e.StartTLS(addr, cfg.HTTP.TLSCertFile, cfg.HTTP.TLSKeyFile)
		} else {
			logger.Warn("TLS certificate not configured, serving plain HTTP", "addr", addr)
			err = e.Start(addr)
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down API server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
