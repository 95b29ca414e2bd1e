package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/rabbitmq/amqp091-go"
)

// MessageHandler processes one decoded message body.
type MessageHandler func(ctx context.Context, data json.RawMessage) error

// Consumer binds a durable queue to a routing key on the events exchange
// and feeds deliveries to a handler.
type Consumer struct {
	conn       *amqp091.Connection
	channel    *amqp091.Channel
	queue      amqp091.Queue
	routingKey string
	handler    MessageHandler
	logger     *slog.Logger
}

// NewConsumer creates a consumer for a specific routing key.
// If logger is nil, a default logger will be used.
func NewConsumer(url, queueName, routingKey string, logger *slog.Logger) (*Consumer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(
		slog.String("component", "mq_consumer"),
		slog.String("queue", queueName),
		slog.String("routing_key", routingKey),
	)

	conn, err := NewConnection(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := DeclareExchange(ch); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	q, err := ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	if err := ch.QueueBind(q.Name, routingKey, ExchangeName, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	logger.Info("consumer initialized", slog.String("exchange", ExchangeName))

	return &Consumer{
		conn:       conn,
		channel:    ch,
		queue:      q,
		routingKey: routingKey,
		logger:     logger,
	}, nil
}

// SetHandler sets the function invoked for each delivery.
func (c *Consumer) SetHandler(h MessageHandler) {
	c.handler = h
}

// Close releases the channel and connection, which also ends Start.
func (c *Consumer) Close() {
	if c.channel != nil {
		_ = c.channel.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// Start consumes messages until the channel closes or ctx is cancelled.
// It blocks and should be called in a goroutine.
//
// Failed deliveries are acked rather than requeued: a reminder is only
// useful at the minute it fires, so retry loops would deliver it late
// or not at all while clogging the queue.
func (c *Consumer) Start(ctx context.Context) error {
	if c.handler == nil {
		return fmt.Errorf("consumer handler not set")
	}

	deliveries, err := c.channel.Consume(
		c.queue.Name,
		"",    // consumer tag
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info("consumer started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-deliveries:
			if !ok {
				return nil
			}
			c.process(ctx, msg)
		}
	}
}

func (c *Consumer) process(ctx context.Context, msg amqp091.Delivery) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("handler panic recovered", slog.Any("panic", r))
			if err := msg.Nack(false, false); err != nil {
				c.logger.Error("failed to nack message after panic",
					slog.String("error", err.Error()))
			}
		}
	}()

	if err := c.handler(ctx, msg.Body); err != nil {
		c.logger.Error("handler error", slog.String("error", err.Error()))
	}

	if err := msg.Ack(false); err != nil {
		c.logger.Error("failed to ack message", slog.String("error", err.Error()))
	}
}
