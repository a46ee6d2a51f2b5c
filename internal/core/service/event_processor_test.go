package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/bankportal/payment-portal/internal/core"
)

func TestProcessEvent_RecordsKnownPayment(t *testing.T) {
	payments := newStubPaymentRepo()
	events := &stubEventRepo{}
	processor := NewPaymentEventProcessor(payments, events)
	ctx := context.Background()

	p := &core.Payment{ID: uuid.New(), OwnerID: customerA.ID, Status: core.PaymentStatusPending}
	if err := payments.Create(ctx, p); err != nil {
		t.Fatalf("create: %v", err)
	}

	event := core.NewCreatedEvent(p)
	if err := processor.ProcessEvent(ctx, event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// redelivery is harmless
	if err := processor.ProcessEvent(ctx, event); err != nil {
		t.Fatalf("unexpected error on redelivery: %v", err)
	}

	recorded, _ := events.ListByPayment(ctx, p.ID)
	if len(recorded) != 1 {
		t.Fatalf("expected 1 recorded event, got %d", len(recorded))
	}
}

func TestProcessEvent_TerminalFailures(t *testing.T) {
	processor := NewPaymentEventProcessor(newStubPaymentRepo(), &stubEventRepo{})
	ctx := context.Background()

	missing := core.PaymentEvent{ID: uuid.New(), Type: core.EventPaymentCreated, PaymentID: uuid.New(), ToStatus: core.PaymentStatusPending}
	err := processor.ProcessEvent(ctx, missing)
	if !errors.Is(err, core.ErrNotFound) || !IsTerminal(err) {
		t.Fatalf("expected terminal not found, got %v", err)
	}

	unknown := core.PaymentEvent{ID: uuid.New(), Type: "payment.deleted", PaymentID: uuid.New(), ToStatus: core.PaymentStatusPending}
	err = processor.ProcessEvent(ctx, unknown)
	if !errors.Is(err, ErrUnknownEvent) || !IsTerminal(err) {
		t.Fatalf("expected terminal unknown event, got %v", err)
	}

	badStatus := core.PaymentEvent{ID: uuid.New(), Type: core.EventPaymentStatusChanged, PaymentID: uuid.New(), ToStatus: "approved"}
	if err := processor.ProcessEvent(ctx, badStatus); !errors.Is(err, ErrUnknownEvent) {
		t.Fatalf("expected ErrUnknownEvent, got %v", err)
	}
}

func TestProcessEvent_StorageFailureIsRetried(t *testing.T) {
	payments := newStubPaymentRepo()
	events := &stubEventRepo{err: core.ErrStorage}
	processor := NewPaymentEventProcessor(payments, events)
	ctx := context.Background()

	p := &core.Payment{ID: uuid.New(), OwnerID: customerA.ID, Status: core.PaymentStatusPending}
	_ = payments.Create(ctx, p)

	err := processor.ProcessEvent(ctx, core.NewCreatedEvent(p))
	if !errors.Is(err, core.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
	if IsTerminal(err) {
		t.Fatal("storage failures should be retried")
	}
}
