package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/bankportal/payment-portal/internal/core"
	"github.com/bankportal/payment-portal/internal/core/validation"
	"github.com/bankportal/payment-portal/internal/port/input"
	"github.com/bankportal/payment-portal/internal/port/output"
)

// PasswordCost is the bcrypt work factor for stored passwords
const PasswordCost = 12

// AuthServiceImpl implements the AuthService input port
type AuthServiceImpl struct {
	userRepo  output.UserRepository
	tokens    output.TokenIssuer
	validator *validation.Validator
	logger    *slog.Logger
	cost      int
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo output.UserRepository, tokens output.TokenIssuer, logger *slog.Logger) input.AuthService {
	return newAuthService(userRepo, tokens, logger, PasswordCost)
}

func newAuthService(userRepo output.UserRepository, tokens output.TokenIssuer, logger *slog.Logger, cost int) *AuthServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthServiceImpl{
		userRepo:  userRepo,
		tokens:    tokens,
		validator: validation.New(),
		logger:    logger,
		cost:      cost,
	}
}

// HashPassword hashes a password with the portal's bcrypt cost
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Signup registers a customer. Staff accounts are only created by the bankctl tool.
func (s *AuthServiceImpl) Signup(ctx context.Context, req input.SignupRequest) (*input.UserResponse, error) {
	in, err := s.validator.Signup(validation.SignupInput{
		FullName:      req.FullName,
		IDNumber:      req.IDNumber,
		AccountNumber: req.AccountNumber,
		Password:      req.Password,
	})
	if err != nil {
		return nil, err
	}

	_, err = s.userRepo.GetByAccountNumber(ctx, in.AccountNumber)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: account %s", core.ErrConflict, in.AccountNumber)
	case !errors.Is(err, core.ErrNotFound):
		return nil, fmt.Errorf("failed to check account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &core.User{
		FullName:      in.FullName,
		IDNumber:      in.IDNumber,
		AccountNumber: in.AccountNumber,
		PasswordHash:  string(hash),
		Role:          core.RoleCustomer,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.InfoContext(ctx, "customer registered", "user_id", user.ID)

	resp := input.NewUserResponse(user)
	return &resp, nil
}

// Login verifies credentials and issues a token
func (s *AuthServiceImpl) Login(ctx context.Context, req input.LoginRequest) (*input.LoginResponse, error) {
	in, err := s.validator.Login(validation.LoginInput{
		AccountNumber: req.AccountNumber,
		Password:      req.Password,
	})
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByAccountNumber(ctx, in.AccountNumber)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		s.logger.WarnContext(ctx, "login rejected", "user_id", user.ID)
		return nil, core.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &input.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      input.NewUserResponse(user),
	}, nil
}
