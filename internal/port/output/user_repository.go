package output

import (
	"context"

	"github.com/google/uuid"

	"github.com/bankportal/payment-portal/internal/core"
)

// UserRepository is an output port for the identity collaborator's user records
type UserRepository interface {
	// Create inserts a new user; core.ErrConflict when the account number is taken
	Create(ctx context.Context, user *core.User) error

	// GetByID retrieves a user, or core.ErrNotFound
	GetByID(ctx context.Context, id uuid.UUID) (*core.User, error)

	// GetByAccountNumber retrieves a user by account number, or core.ErrNotFound
	GetByAccountNumber(ctx context.Context, accountNumber string) (*core.User, error)

	// GetByIDs resolves several users at once; unknown ids are left out of the map
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]core.User, error)

	// List returns every user, newest first
	List(ctx context.Context) ([]core.User, error)

	// UpdateRole changes a user's role and returns the updated record
	UpdateRole(ctx context.Context, id uuid.UUID, role core.Role) (*core.User, error)

	// Delete removes a user, or returns core.ErrNotFound
	Delete(ctx context.Context, id uuid.UUID) error
}
