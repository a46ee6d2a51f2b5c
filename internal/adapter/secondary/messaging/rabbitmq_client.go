package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/bankportal/payment-portal/internal/core"
	"github.com/bankportal/payment-portal/internal/port/output"
)

const (
	ExchangeName  = "payments"
	QueueName     = "payment_audit"
	BindingKey    = "payment.#"
	PrefetchCount = 1 // Process one message at a time per worker
)

// EventHandler processes one consumed payment event
type EventHandler func(ctx context.Context, event core.PaymentEvent) error

// RabbitMQClient is a secondary adapter that implements PaymentMessaging output port
type RabbitMQClient struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *slog.Logger
}

// NewRabbitMQClient creates a new RabbitMQ client (returns interface for ports)
func NewRabbitMQClient(amqpURL string, logger *slog.Logger) (output.PaymentMessaging, error) {
	return NewRabbitMQClientConcrete(amqpURL, logger)
}

// NewRabbitMQClientConcrete creates a new RabbitMQ client (returns concrete type for workers)
func NewRabbitMQClientConcrete(amqpURL string, logger *slog.Logger) (*RabbitMQClient, error) {
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := declareTopology(channel); err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	return &RabbitMQClient{
		conn:    conn,
		channel: channel,
		logger:  logger,
	}, nil
}

// declareTopology binds the audit queue to every payment routing key on the topic exchange
func declareTopology(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(ExchangeName, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", ExchangeName, err)
	}
	if _, err := ch.QueueDeclare(QueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", QueueName, err)
	}
	if err := ch.QueueBind(QueueName, BindingKey, ExchangeName, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue %s to %s: %w", QueueName, BindingKey, err)
	}
	return nil
}

// PublishPaymentEvent publishes a lifecycle event; the event type is the routing key
func (c *RabbitMQClient) PublishPaymentEvent(ctx context.Context, event core.PaymentEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = c.channel.PublishWithContext(
		ctx,
		ExchangeName,
		string(event.Type),
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent, // Make message persistent
			MessageId:    event.ID.String(),
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	c.logger.DebugContext(ctx, "published payment event",
		"event_type", event.Type,
		"payment_id", event.PaymentID,
	)
	return nil
}

// ConsumePaymentEvents starts consuming payment events until ctx is cancelled.
// Failed deliveries are requeued unless isTerminal says a retry cannot succeed.
func (c *RabbitMQClient) ConsumePaymentEvents(ctx context.Context, handler EventHandler, isTerminal func(error) bool) error {
	// Set QoS to process one message at a time
	err := c.channel.Qos(
		PrefetchCount,
		0,     // prefetch size
		false, // global
	)
	if err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	msgs, err := c.channel.ConsumeWithContext(
		ctx,
		QueueName,
		"",    // consumer tag
		false, // auto-ack (we'll manually ack after processing)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info("started consuming payment events", "queue", QueueName)

	go func() {
		for msg := range msgs {
			c.handle(ctx, msg, handler, isTerminal)
		}
		c.logger.Info("payment event consumer stopped")
	}()

	return nil
}

func (c *RabbitMQClient) handle(ctx context.Context, msg amqp.Delivery, handler EventHandler, isTerminal func(error) bool) {
	event, err := DecodeEvent(msg.Body)
	if err != nil {
		// A malformed body will never decode; drop it instead of looping
		c.logger.Error("dropping malformed payment event", "message_id", msg.MessageId, "error", err)
		msg.Nack(false, false)
		return
	}

	if err := handler(ctx, event); err != nil {
		c.logger.Error("failed to process payment event",
			"event_id", event.ID,
			"payment_id", event.PaymentID,
			"error", err,
		)
		if isTerminal != nil && isTerminal(err) {
			msg.Ack(false) // Acknowledge to remove from queue
		} else {
			msg.Nack(false, true) // Requeue for retry
		}
		return
	}

	msg.Ack(false)
	c.logger.Info("recorded payment event", "event_id", event.ID, "event_type", event.Type)
}

// DecodeEvent parses a message body into a payment event
func DecodeEvent(body []byte) (core.PaymentEvent, error) {
	var event core.PaymentEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return core.PaymentEvent{}, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	if event.PaymentID == uuid.Nil || event.Type == "" {
		return core.PaymentEvent{}, fmt.Errorf("event is missing payment id or type")
	}
	return event, nil
}

// Close closes the RabbitMQ connection
func (c *RabbitMQClient) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Disabled is a PaymentMessaging that drops every event, for running without a broker
type Disabled struct {
	Logger *slog.Logger
}

// PublishPaymentEvent logs and discards the event
func (d Disabled) PublishPaymentEvent(ctx context.Context, event core.PaymentEvent) error {
	if d.Logger != nil {
		d.Logger.DebugContext(ctx, "messaging disabled, event dropped", "event_type", event.Type)
	}
	return nil
}

// Close does nothing
func (Disabled) Close() error { return nil }
