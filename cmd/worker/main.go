package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bankportal/payment-portal/internal/adapter/secondary/database"
	"github.com/bankportal/payment-portal/internal/adapter/secondary/messaging"
	"github.com/bankportal/payment-portal/internal/config"
	"github.com/bankportal/payment-portal/internal/constant/model/db"
	"github.com/bankportal/payment-portal/internal/core"
	"github.com/bankportal/payment-portal/internal/core/service"
	"github.com/bankportal/payment-portal/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.Logging)
	slog.SetDefault(logger)

	if cfg.RabbitMQURL == "" {
		logger.Error("RABBITMQ_URL is required for the audit worker")
		os.Exit(1)
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

	// Initialize secondary adapters: Repositories (implement output ports)
	paymentRepo := database.NewGormPaymentRepository(dbConn.DB)
	eventRepo := database.NewGormPaymentEventRepository(dbConn.DB)

	// Initialize core service: audit trail processor
	processor := service.NewPaymentEventProcessor(paymentRepo, eventRepo)

	// Initialize secondary adapter: Messaging (concrete type for worker)
	msgClient, err := messaging.NewRabbitMQClientConcrete(cfg.RabbitMQURL, logger)
	if err != nil {
		logger.Error("failed to connect to RabbitMQ", "error", err)
		os.Exit(1)
	}
	defer msgClient.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = msgClient.ConsumePaymentEvents(ctx, func(ctx context.Context, event core.PaymentEvent) error {
		logger.Debug("processing payment event", "event_id", event.ID, "payment_id", event.PaymentID)
		return processor.ProcessEvent(ctx, event)
	}, service.IsTerminal)
	if err != nil {
		logger.Error("failed to start consuming events", "error", err)
		os.Exit(1)
	}

	logger.Info("payment audit worker started, press CTRL+C to exit")
	<-ctx.Done()
	logger.Info("shutting down worker")
}
