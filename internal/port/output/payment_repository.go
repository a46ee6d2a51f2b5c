package output

import (
	"context"

	"github.com/google/uuid"

	"github.com/bankportal/payment-portal/internal/core"
)

// PaymentRepository is an output port (secondary port) for payment data access
// Secondary adapters (database implementations) will implement this
type PaymentRepository interface {
	// Create inserts a new payment, filling in the storage timestamps
	Create(ctx context.Context, payment *core.Payment) error

	// GetByID retrieves a payment by its ID, or core.ErrNotFound
	GetByID(ctx context.Context, id uuid.UUID) (*core.Payment, error)

	// ListByOwner returns the owner's payments, newest first
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]core.Payment, error)

	// ListAll returns every payment, newest first
	ListAll(ctx context.Context) ([]core.Payment, error)

	// UpdateStatus writes a status change and returns the updated record together with
	// the status it replaced, as read under the write lock. Unknown ids give core.ErrNotFound
	UpdateStatus(ctx context.Context, id uuid.UUID, change core.StatusChange) (*core.Payment, core.PaymentStatus, error)

	// CountByStatus returns the number of payments per status
	CountByStatus(ctx context.Context) (map[core.PaymentStatus]int64, error)
}
