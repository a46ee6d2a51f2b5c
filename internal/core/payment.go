package core

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bankportal/payment-portal/internal/core/validation"
)

// AmountPlaces is the precision amounts are stored with
const AmountPlaces = 2

// Currency represents supported currencies
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyZAR Currency = "ZAR"
)

// Provider is the network a payment is routed through
type Provider string

const (
	ProviderSWIFT        Provider = "SWIFT"
	ProviderTransferWise Provider = "TransferWise"
	ProviderWesternUnion Provider = "WesternUnion"
)

// Payment represents an international payment instruction
type Payment struct {
	ID               uuid.UUID
	OwnerID          uuid.UUID
	Amount           decimal.Decimal
	Currency         Currency
	Provider         Provider
	RecipientAccount string
	SwiftCode        string
	Reference        string
	Status           PaymentStatus
	VerifiedBy       *uuid.UUID
	VerifiedAt       *time.Time
	SubmittedAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

var fields = validation.New()

// NewPayment validates and normalizes in and builds a pending payment owned by ownerID.
// Every failing field is reported in a single ValidationError.
func NewPayment(ownerID uuid.UUID, in validation.PaymentInput) (*Payment, error) {
	if ownerID == uuid.Nil {
		return nil, fmt.Errorf("payment owner is required")
	}

	norm, err := fields.Payment(in)
	if err != nil {
		return nil, err
	}

	amount, _ := validation.ParseAmount(norm.Amount)
	amount = amount.Round(AmountPlaces)
	if !amount.IsPositive() {
		return nil, &ValidationError{Reasons: []string{"Invalid amount"}}
	}

	return &Payment{
		ID:               uuid.New(),
		OwnerID:          ownerID,
		Amount:           amount,
		Currency:         Currency(norm.Currency),
		Provider:         Provider(norm.Provider),
		RecipientAccount: norm.RecipientAccount,
		SwiftCode:        norm.SwiftCode,
		Reference:        norm.Reference,
		Status:           PaymentStatusPending,
	}, nil
}

// OwnedBy reports whether the actor submitted the payment
func (p *Payment) OwnedBy(actor Actor) bool {
	return p.OwnerID == actor.ID
}
