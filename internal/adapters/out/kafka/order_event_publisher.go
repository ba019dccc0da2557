// Package kafka publishes order events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"deliveryportal/internal/core/ports"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// messageWriter is the subset of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// statusChangedMessage is the JSON payload of an order status change.
type statusChangedMessage struct {
	OrderID     string    `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	CompanyID   string    `json:"companyId"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	CourierID   *string   `json:"courierId,omitempty"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// OrderEventPublisher writes OrderStatusChanged events keyed by order id, so
// that all events of one order land on the same partition.
type OrderEventPublisher struct {
	writer messageWriter
	logger *zap.Logger
}

var _ ports.OrderEventPublisher = (*OrderEventPublisher)(nil)

// NewOrderEventPublisher creates a publisher writing to topic on the given brokers.
func NewOrderEventPublisher(brokers []string, topic string, logger *zap.Logger) *OrderEventPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		WriteTimeout:           5 * time.Second,
		AllowAutoTopicCreation: true,
	}
	return newOrderEventPublisher(w, logger)
}

func newOrderEventPublisher(w messageWriter, logger *zap.Logger) *OrderEventPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderEventPublisher{
		writer: w,
		logger: logger.With(zap.String("component", "kafka_order_publisher")),
	}
}

func (p *OrderEventPublisher) PublishStatusChanged(ctx context.Context, event ports.OrderStatusChanged) error {
	msg := statusChangedMessage{
		OrderID:     event.OrderID.String(),
		OrderNumber: event.OrderNumber.String(),
		CompanyID:   event.CompanyID.String(),
		From:        event.From.String(),
		To:          event.To.String(),
		OccurredAt:  event.OccurredAt.UTC(),
	}
	if event.CourierID != nil {
		courier := event.CourierID.String()
		msg.CourierID = &courier
	}

	value, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode order status event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.OrderID),
		Value: value,
		Time:  msg.OccurredAt,
	})
	if err != nil {
		p.logger.Error("failed to publish order status event",
			zap.String("order_id", msg.OrderID),
			zap.String("to", msg.To),
			zap.Error(err),
		)
		return fmt.Errorf("publish order status event: %w", err)
	}

	p.logger.Debug("order status event published",
		zap.String("order_id", msg.OrderID),
		zap.String("from", msg.From),
		zap.String("to", msg.To),
	)
	return nil
}

// Close flushes pending messages and releases the writer.
func (p *OrderEventPublisher) Close() error {
	return p.writer.Close()
}
