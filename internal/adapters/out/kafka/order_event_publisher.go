// Package kafka publishes order integration events to Kafka.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// DefaultOrderChangedTopic receives every OrderChanged event.
const DefaultOrderChangedTopic = "orders.changed"

// MessageWriter is the part of *kafka.Writer the publisher uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

var _ ports.OrderEventPublisher = (*OrderEventPublisher)(nil)

// OrderEventPublisher writes events as JSON keyed by customOrderId, so all
// events of one order land on the same partition in order.
type OrderEventPublisher struct {
	writer MessageWriter
}

// NewWriter creates a writer for the given comma separated broker list.
func NewWriter(brokers, topic string) (*kafka.Writer, error) {
	addrs := make([]string, 0)
	for _, b := range strings.Split(brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			addrs = append(addrs, b)
		}
	}
	if len(addrs) == 0 {
		return nil, errors.New("at least one kafka broker is required")
	}
	if topic == "" {
		topic = DefaultOrderChangedTopic
	}

	return &kafka.Writer{
		Addr:                   kafka.TCP(addrs...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}, nil
}

// NewOrderEventPublisher creates a publisher over writer.
func NewOrderEventPublisher(writer MessageWriter) (*OrderEventPublisher, error) {
	if writer == nil {
		return nil, errors.New("kafka writer is required")
	}
	return &OrderEventPublisher{writer: writer}, nil
}

// Publish sends one event.
func (p *OrderEventPublisher) Publish(ctx context.Context, event order.ChangedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event.Kind, err)
	}

	key := event.CustomOrderID
	if key == "" {
		key = event.OrderID
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: payload,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-kind", Value: []byte(event.Kind)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s event for order %s: %w", event.Kind, key, err)
	}
	return nil
}

// Close flushes pending messages and closes the writer.
func (p *OrderEventPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher discards events. Used when no broker is configured.
type NopPublisher struct{}

// Publish does nothing.
func (NopPublisher) Publish(context.Context, order.ChangedEvent) error { return nil }
