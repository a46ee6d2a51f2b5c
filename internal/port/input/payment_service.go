package input

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bankportal/payment-portal/internal/core"
)

// PaymentService is an input port (primary port) for payment operations
// Primary adapters (HTTP handlers) will use this
type PaymentService interface {
	// CreatePayment creates a new pending payment owned by a customer
	CreatePayment(ctx context.Context, actor core.Actor, req CreatePaymentRequest) (*PaymentResponse, error)

	// GetPayment retrieves a payment visible to the actor
	GetPayment(ctx context.Context, actor core.Actor, id uuid.UUID) (*PaymentResponse, error)

	// ListOwnPayments lists the actor's own payments, newest first
	ListOwnPayments(ctx context.Context, actor core.Actor) ([]PaymentResponse, error)

	// ListAllPayments lists every payment with its owner, newest first (staff only)
	ListAllPayments(ctx context.Context, actor core.Actor) ([]PaymentSummary, error)

	// UpdateStatus transitions a payment (staff only)
	UpdateStatus(ctx context.Context, actor core.Actor, req UpdateStatusRequest) (*PaymentResponse, error)

	// ListPaymentEvents returns the recorded audit trail of a payment, oldest first (staff only)
	ListPaymentEvents(ctx context.Context, actor core.Actor, id uuid.UUID) ([]core.PaymentEvent, error)
}

// CreatePaymentRequest represents the request to create a payment.
// Fields are raw; the service validates and normalizes them.
type CreatePaymentRequest struct {
	Amount           string
	Currency         string
	Provider         string
	RecipientAccount string
	SwiftCode        string
	Reference        string
}

// UpdateStatusRequest represents a manual status transition
type UpdateStatusRequest struct {
	PaymentID uuid.UUID
	Status    string
}

// PaymentResponse represents the response for a payment
type PaymentResponse struct {
	ID               uuid.UUID
	OwnerID          uuid.UUID
	Amount           decimal.Decimal
	Currency         core.Currency
	Provider         core.Provider
	RecipientAccount string
	SwiftCode        string
	Reference        string
	Status           core.PaymentStatus
	VerifiedBy       *uuid.UUID
	VerifiedAt       *time.Time
	SubmittedAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// OwnerInfo is the owner identity shown next to a payment in staff listings
type OwnerInfo struct {
	FullName      string
	AccountNumber string
}

// PaymentSummary is a payment annotated with its owner
type PaymentSummary struct {
	PaymentResponse
	Owner *OwnerInfo
}

// NewPaymentResponse converts a core payment
func NewPaymentResponse(p *core.Payment) PaymentResponse {
	return PaymentResponse{
		ID:               p.ID,
		OwnerID:          p.OwnerID,
		Amount:           p.Amount,
		Currency:         p.Currency,
		Provider:         p.Provider,
		RecipientAccount: p.RecipientAccount,
		SwiftCode:        p.SwiftCode,
		Reference:        p.Reference,
		Status:           p.Status,
		VerifiedBy:       p.VerifiedBy,
		VerifiedAt:       p.VerifiedAt,
		SubmittedAt:      p.SubmittedAt,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}
