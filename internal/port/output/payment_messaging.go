package output

import (
	"context"

	"github.com/google/uuid"

	"github.com/bankportal/payment-portal/internal/core"
)

// PaymentMessaging is an output port (secondary port) for payment messaging
// Secondary adapters (RabbitMQ implementations) will implement this
type PaymentMessaging interface {
	// PublishPaymentEvent publishes a payment lifecycle event
	PublishPaymentEvent(ctx context.Context, event core.PaymentEvent) error
	// Close closes the messaging connection
	Close() error
}

// PaymentEventRepository stores the audit trail consumed from the queue
type PaymentEventRepository interface {
	// Record saves the event; recording the same event twice is a no-op
	Record(ctx context.Context, event core.PaymentEvent) error

	// ListByPayment returns a payment's events, oldest first
	ListByPayment(ctx context.Context, paymentID uuid.UUID) ([]core.PaymentEvent, error)
}
