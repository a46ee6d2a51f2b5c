package core

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bankportal/payment-portal/internal/core/validation"
)

// PaymentStatus represents the status of a payment
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusVerified  PaymentStatus = "verified"
	PaymentStatusSubmitted PaymentStatus = "submitted"
	PaymentStatusRejected  PaymentStatus = "rejected"
)

// AllStatuses lists every status in reporting order
var AllStatuses = []PaymentStatus{
	PaymentStatusPending,
	PaymentStatusVerified,
	PaymentStatusSubmitted,
	PaymentStatusRejected,
}

// AllowedTransitions maps the current status to the statuses staff may set.
// Any reviewed status can be revisited, so a rejected payment may still be verified.
var AllowedTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusPending:   {PaymentStatusVerified, PaymentStatusSubmitted, PaymentStatusRejected},
	PaymentStatusVerified:  {PaymentStatusVerified, PaymentStatusSubmitted, PaymentStatusRejected},
	PaymentStatusSubmitted: {PaymentStatusVerified, PaymentStatusSubmitted, PaymentStatusRejected},
	PaymentStatusRejected:  {PaymentStatusVerified, PaymentStatusSubmitted, PaymentStatusRejected},
}

// Valid checks the status is one of the known values
func (s PaymentStatus) Valid() bool {
	_, ok := AllowedTransitions[s]
	return ok
}

// CanTransition checks if a transition from one status to another is allowed
func CanTransition(from, to PaymentStatus) bool {
	for _, s := range AllowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// StatusChange is the write produced by a successful transition
type StatusChange struct {
	From        PaymentStatus
	To          PaymentStatus
	ActorID     uuid.UUID
	VerifiedBy  *uuid.UUID
	VerifiedAt  *time.Time
	SubmittedAt *time.Time
}

// CheckTransition applies the role guard and target rule without looking at any payment.
// The role is checked first so a customer is refused even with a bad target.
func CheckTransition(actor Actor, requested string) (PaymentStatus, error) {
	if err := actor.Authorize(StaffRoles...); err != nil {
		return "", err
	}
	target, ok := validation.StatusTarget(requested)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, target)
	}
	return PaymentStatus(target), nil
}

// Transition computes the status change an actor requests on p
func (p *Payment) Transition(actor Actor, requested string, now time.Time) (StatusChange, error) {
	target, err := CheckTransition(actor, requested)
	if err != nil {
		return StatusChange{}, err
	}
	if !CanTransition(p.Status, target) {
		return StatusChange{}, fmt.Errorf("%w: %s to %s", ErrInvalidStatus, p.Status, target)
	}

	change := StatusChange{From: p.Status, To: target, ActorID: actor.ID}
	switch target {
	case PaymentStatusVerified:
		by, at := actor.ID, now
		change.VerifiedBy = &by
		change.VerifiedAt = &at
	case PaymentStatusSubmitted:
		at := now
		change.SubmittedAt = &at
	}
	return change, nil
}

// Apply writes the change onto p
func (p *Payment) Apply(change StatusChange) {
	p.Status = change.To
	if change.VerifiedBy != nil {
		p.VerifiedBy = change.VerifiedBy
		p.VerifiedAt = change.VerifiedAt
	}
	if change.SubmittedAt != nil {
		p.SubmittedAt = change.SubmittedAt
	}
}
