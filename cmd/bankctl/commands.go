package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/bankportal/payment-portal/internal/adapter/secondary/database"
	"github.com/bankportal/payment-portal/internal/config"
	"github.com/bankportal/payment-portal/internal/constant/model/db"
	"github.com/bankportal/payment-portal/internal/core"
	"github.com/bankportal/payment-portal/internal/core/service"
	"github.com/bankportal/payment-portal/internal/core/validation"
	"github.com/bankportal/payment-portal/internal/logging"
	"github.com/bankportal/payment-portal/internal/port/output"
)

// staffAccount is a default staff login created by seed-staff
type staffAccount struct {
	FullName      string
	IDNumber      string
	AccountNumber string
	Role          core.Role
}

var defaultStaff = []staffAccount{
	{FullName: "Portal Employee", IDNumber: "9000000000001", AccountNumber: "90000001", Role: core.RoleEmployee},
	{FullName: "Portal Admin", IDNumber: "9000000000002", AccountNumber: "90000002", Role: core.RoleAdmin},
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, logger, err := connect(cmd)
			if err != nil {
				return err
			}
			defer conn.Close()

			// NewDB migrates on open; Migrate is idempotent
			if err := db.Migrate(conn.DB); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			logger.Info("schema is up to date")
			return nil
		},
	}
}

func seedStaffCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "seed-staff",
		Short: "Create the default employee and admin accounts if they are missing",
		Long: `Create the default staff accounts used to verify and submit payments.

Accounts that already exist are left untouched.

Examples:
  bankctl seed-staff --password 'S3cure!Pass'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !validation.StrongPassword(password) {
				return errors.New("password must be 8-32 characters with upper, lower, digit and symbol")
			}

			conn, logger, err := connect(cmd)
			if err != nil {
				return err
			}
			defer conn.Close()

			users := database.NewGormUserRepository(conn.DB)
			created, err := seedStaff(cmd.Context(), users, password, defaultStaff)
			if err != nil {
				return err
			}
			logger.Info("staff seeding finished", "created", created, "total", len(defaultStaff))
			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "Password for the seeded accounts")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

// seedStaff creates every account in staff whose account number is not taken yet
func seedStaff(ctx context.Context, users output.UserRepository, password string, staff []staffAccount) (int, error) {
	hash, err := service.HashPassword(password)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, s := range staff {
		_, err := users.GetByAccountNumber(ctx, s.AccountNumber)
		if err == nil {
			continue
		}
		if !errors.Is(err, core.ErrNotFound) {
			return created, fmt.Errorf("lookup %s: %w", s.AccountNumber, err)
		}

		if err := users.Create(ctx, &core.User{
			FullName:      s.FullName,
			IDNumber:      s.IDNumber,
			AccountNumber: s.AccountNumber,
			PasswordHash:  hash,
			Role:          s.Role,
		}); err != nil {
			return created, fmt.Errorf("create %s: %w", s.AccountNumber, err)
		}
		created++
	}
	return created, nil
}

func connect(cmd *cobra.Command) (*db.DB, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger := logging.New(os.Stderr, cfg.Logging)

	dsn := cfg.DatabaseURL
	if flag, _ := cmd.Flags().GetString("database-url"); flag != "" {
		dsn = flag
	}

	opts := db.DefaultOptions()
	opts.Logger = logger
	conn, err := db.NewDB(dsn, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	return conn, logger, nil
}
