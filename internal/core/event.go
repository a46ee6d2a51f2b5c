package core

import (
	"time"

	"github.com/google/uuid"
)

// EventType names a payment lifecycle event
type EventType string

const (
	EventPaymentCreated       EventType = "payment.created"
	EventPaymentStatusChanged EventType = "payment.status_changed"
)

// PaymentEvent records one lifecycle step for the audit trail
type PaymentEvent struct {
	ID         uuid.UUID     `json:"id"`
	Type       EventType     `json:"type"`
	PaymentID  uuid.UUID     `json:"payment_id"`
	ActorID    uuid.UUID     `json:"actor_id"`
	FromStatus PaymentStatus `json:"from_status,omitempty"`
	ToStatus   PaymentStatus `json:"to_status"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// NewCreatedEvent describes the creation of p
func NewCreatedEvent(p *Payment) PaymentEvent {
	return PaymentEvent{
		ID:         uuid.New(),
		Type:       EventPaymentCreated,
		PaymentID:  p.ID,
		ActorID:    p.OwnerID,
		ToStatus:   p.Status,
		OccurredAt: time.Now().UTC(),
	}
}

// NewStatusChangedEvent describes change applied to the payment with id paymentID
func NewStatusChangedEvent(paymentID uuid.UUID, change StatusChange) PaymentEvent {
	return PaymentEvent{
		ID:         uuid.New(),
		Type:       EventPaymentStatusChanged,
		PaymentID:  paymentID,
		ActorID:    change.ActorID,
		FromStatus: change.From,
		ToStatus:   change.To,
		OccurredAt: time.Now().UTC(),
	}
}
