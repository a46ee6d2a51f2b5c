package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bankportal/payment-portal/internal/core"
	"github.com/bankportal/payment-portal/internal/port/output"
)

// ErrUnknownEvent is returned for events the audit trail does not record.
// Like core.ErrNotFound it is terminal: redelivery cannot fix it.
var ErrUnknownEvent = errors.New("unknown payment event")

// PaymentEventProcessor records lifecycle events consumed from the queue
type PaymentEventProcessor struct {
	paymentRepo output.PaymentRepository
	eventRepo   output.PaymentEventRepository
}

// NewPaymentEventProcessor creates a new event processor
func NewPaymentEventProcessor(paymentRepo output.PaymentRepository, eventRepo output.PaymentEventRepository) *PaymentEventProcessor {
	return &PaymentEventProcessor{
		paymentRepo: paymentRepo,
		eventRepo:   eventRepo,
	}
}

// ProcessEvent stores the event in the audit trail.
// Processing is idempotent: an event already recorded is skipped by the repository.
func (p *PaymentEventProcessor) ProcessEvent(ctx context.Context, event core.PaymentEvent) error {
	switch event.Type {
	case core.EventPaymentCreated, core.EventPaymentStatusChanged:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, event.Type)
	}
	if !event.ToStatus.Valid() {
		return fmt.Errorf("%w: bad status %q", ErrUnknownEvent, event.ToStatus)
	}

	// The payment must exist; an event for a missing payment is dropped
	if _, err := p.paymentRepo.GetByID(ctx, event.PaymentID); err != nil {
		return fmt.Errorf("failed to process event %s: %w", event.ID, err)
	}

	if err := p.eventRepo.Record(ctx, event); err != nil {
		return fmt.Errorf("failed to record event %s: %w", event.ID, err)
	}
	return nil
}

// IsTerminal reports whether a processing error should not be retried
func IsTerminal(err error) bool {
	return errors.Is(err, ErrUnknownEvent) || errors.Is(err, core.ErrNotFound)
}
