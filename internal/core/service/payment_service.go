package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bankportal/payment-portal/internal/core"
	"github.com/bankportal/payment-portal/internal/core/validation"
	"github.com/bankportal/payment-portal/internal/port/input"
	"github.com/bankportal/payment-portal/internal/port/output"
)

// PaymentServiceImpl implements the PaymentService input port
type PaymentServiceImpl struct {
	paymentRepo output.PaymentRepository
	userRepo    output.UserRepository
	paymentMsg  output.PaymentMessaging
	events      output.PaymentEventRepository
	logger      *slog.Logger
	now         func() time.Time
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo output.PaymentRepository,
	userRepo output.UserRepository,
	paymentMsg output.PaymentMessaging,
	events output.PaymentEventRepository,
	logger *slog.Logger,
) input.PaymentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PaymentServiceImpl{
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		paymentMsg:  paymentMsg,
		events:      events,
		logger:      logger,
		now:         time.Now,
	}
}

// CreatePayment creates a new payment
func (s *PaymentServiceImpl) CreatePayment(ctx context.Context, actor core.Actor, req input.CreatePaymentRequest) (*input.PaymentResponse, error) {
	if err := actor.Authorize(core.RoleCustomer); err != nil {
		return nil, err
	}

	payment, err := core.NewPayment(actor.ID, validation.PaymentInput{
		Amount:           req.Amount,
		Currency:         req.Currency,
		Provider:         req.Provider,
		RecipientAccount: req.RecipientAccount,
		SwiftCode:        req.SwiftCode,
		Reference:        req.Reference,
	})
	if err != nil {
		return nil, err
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	s.publish(ctx, core.NewCreatedEvent(payment))

	s.logger.InfoContext(ctx, "payment created",
		"payment_id", payment.ID,
		"owner_id", payment.OwnerID,
		"currency", payment.Currency,
		"provider", payment.Provider,
	)

	resp := input.NewPaymentResponse(payment)
	return &resp, nil
}

// GetPayment retrieves a payment by ID. Customers only see their own payments.
func (s *PaymentServiceImpl) GetPayment(ctx context.Context, actor core.Actor, id uuid.UUID) (*input.PaymentResponse, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	if !payment.OwnedBy(actor) && !core.Allowed(actor.Role, core.StaffRoles...) {
		return nil, core.ErrForbidden
	}

	resp := input.NewPaymentResponse(payment)
	return &resp, nil
}

// ListOwnPayments returns the customer's payment history, newest first
func (s *PaymentServiceImpl) ListOwnPayments(ctx context.Context, actor core.Actor) ([]input.PaymentResponse, error) {
	if err := actor.Authorize(core.RoleCustomer); err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.ListByOwner(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	out := make([]input.PaymentResponse, 0, len(payments))
	for i := range payments {
		// never hand back another owner's record
		if !payments[i].OwnedBy(actor) {
			continue
		}
		out = append(out, input.NewPaymentResponse(&payments[i]))
	}
	return out, nil
}

// ListAllPayments returns every payment with the owner's name and account number
func (s *PaymentServiceImpl) ListAllPayments(ctx context.Context, actor core.Actor) ([]input.PaymentSummary, error) {
	if err := actor.Authorize(core.StaffRoles...); err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	owners, err := s.lookupOwners(ctx, payments)
	if err != nil {
		return nil, err
	}

	out := make([]input.PaymentSummary, 0, len(payments))
	for i := range payments {
		summary := input.PaymentSummary{PaymentResponse: input.NewPaymentResponse(&payments[i])}
		if owner, ok := owners[payments[i].OwnerID]; ok {
			summary.Owner = &input.OwnerInfo{
				FullName:      owner.FullName,
				AccountNumber: owner.AccountNumber,
			}
		}
		out = append(out, summary)
	}
	return out, nil
}

func (s *PaymentServiceImpl) lookupOwners(ctx context.Context, payments []core.Payment) (map[uuid.UUID]core.User, error) {
	if len(payments) == 0 {
		return map[uuid.UUID]core.User{}, nil
	}

	seen := make(map[uuid.UUID]struct{}, len(payments))
	ids := make([]uuid.UUID, 0, len(payments))
	for _, p := range payments {
		if _, ok := seen[p.OwnerID]; ok {
			continue
		}
		seen[p.OwnerID] = struct{}{}
		ids = append(ids, p.OwnerID)
	}

	owners, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment owners: %w", err)
	}
	return owners, nil
}

// UpdateStatus applies a manual status transition
func (s *PaymentServiceImpl) UpdateStatus(ctx context.Context, actor core.Actor, req input.UpdateStatusRequest) (*input.PaymentResponse, error) {
	// Guard and target are checked before anything is read
	if _, err := core.CheckTransition(actor, req.Status); err != nil {
		return nil, err
	}

	payment, err := s.paymentRepo.GetByID(ctx, req.PaymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	change, err := payment.Transition(actor, req.Status, s.now().UTC())
	if err != nil {
		return nil, err
	}

	updated, previous, err := s.paymentRepo.UpdateStatus(ctx, payment.ID, change)
	if err != nil {
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}
	// The read above is unlocked; the event reports what the write actually replaced
	change.From = previous

	s.publish(ctx, core.NewStatusChangedEvent(updated.ID, change))

	s.logger.InfoContext(ctx, "payment status updated",
		"payment_id", updated.ID,
		"from", change.From,
		"to", change.To,
		"actor_id", actor.ID,
		"actor_role", actor.Role,
	)

	resp := input.NewPaymentResponse(updated)
	return &resp, nil
}

// ListPaymentEvents returns what the audit worker has recorded for a payment.
// Events still queued are not included.
func (s *PaymentServiceImpl) ListPaymentEvents(ctx context.Context, actor core.Actor, id uuid.UUID) ([]core.PaymentEvent, error) {
	if err := actor.Authorize(core.StaffRoles...); err != nil {
		return nil, err
	}

	if _, err := s.paymentRepo.GetByID(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	events, err := s.events.ListByPayment(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment events: %w", err)
	}
	return events, nil
}

// publish sends the event to the audit queue. The write it describes is already
// committed, so a failure is logged rather than returned.
func (s *PaymentServiceImpl) publish(ctx context.Context, event core.PaymentEvent) {
	if s.paymentMsg == nil {
		return
	}
	if err := s.paymentMsg.PublishPaymentEvent(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to publish payment event",
			"event_type", event.Type,
			"payment_id", event.PaymentID,
			"error", err,
		)
	}
}
