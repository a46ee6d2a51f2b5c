package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/bankportal/payment-portal/internal/core"
	"github.com/bankportal/payment-portal/internal/port/input"
	"github.com/bankportal/payment-portal/internal/port/output"
)

// UserAdminServiceImpl implements the UserAdminService input port
type UserAdminServiceImpl struct {
	userRepo output.UserRepository
	logger   *slog.Logger
}

// NewUserAdminService creates a new user administration service
func NewUserAdminService(userRepo output.UserRepository, logger *slog.Logger) input.UserAdminService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserAdminServiceImpl{userRepo: userRepo, logger: logger}
}

// ListUsers returns every user, newest first
func (s *UserAdminServiceImpl) ListUsers(ctx context.Context, actor core.Actor) ([]input.UserResponse, error) {
	if err := actor.Authorize(core.RoleAdmin); err != nil {
		return nil, err
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	out := make([]input.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, input.NewUserResponse(&users[i]))
	}
	return out, nil
}

// PromoteUser grants the admin role
func (s *UserAdminServiceImpl) PromoteUser(ctx context.Context, actor core.Actor, id uuid.UUID) (*input.UserResponse, error) {
	return s.setRole(ctx, actor, id, core.RoleAdmin)
}

// DemoteUser resets a user to the customer role
func (s *UserAdminServiceImpl) DemoteUser(ctx context.Context, actor core.Actor, id uuid.UUID) (*input.UserResponse, error) {
	return s.setRole(ctx, actor, id, core.RoleCustomer)
}

func (s *UserAdminServiceImpl) setRole(ctx context.Context, actor core.Actor, id uuid.UUID, role core.Role) (*input.UserResponse, error) {
	if err := actor.Authorize(core.RoleAdmin); err != nil {
		return nil, err
	}

	user, err := s.userRepo.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	s.logger.InfoContext(ctx, "user role changed", "user_id", id, "role", role, "actor_id", actor.ID)

	resp := input.NewUserResponse(user)
	return &resp, nil
}

// DeleteUser removes a user. Their payments are kept.
func (s *UserAdminServiceImpl) DeleteUser(ctx context.Context, actor core.Actor, id uuid.UUID) error {
	if err := actor.Authorize(core.RoleAdmin); err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.InfoContext(ctx, "user deleted", "user_id", id, "actor_id", actor.ID)
	return nil
}
