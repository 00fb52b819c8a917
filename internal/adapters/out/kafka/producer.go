// Package kafka delivers outbox notifications to a Kafka topic. Writes are
// synchronous: the dispatch job only marks a notification published after the
// broker acknowledged it, so a failed write is retried on the next tick.
package kafka

import (
	"context"
	"fmt"
	"time"

	"distribution/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// Producer implements ports.NotificationPublisher on top of kafka-go.
// Messages are keyed by order ID so all events of one order land on the same
// partition and consumers observe its transitions in order.
type Producer struct {
	writer *kafka.Writer
}

// NewProducer creates a producer for the given brokers and topic.
func NewProducer(brokers []string, topic string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

// Publish writes one notification to the topic.
func (p *Producer) Publish(ctx context.Context, notification ports.Notification) error {
	message := kafka.Message{
		Key:   []byte(notification.OrderID.String()),
		Value: notification.Payload,
		Time:  time.Now(),
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(notification.EventType)},
			{Key: "notification_id", Value: []byte(notification.ID.String())},
		},
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("publish notification %s: %w", notification.ID, err)
	}

	return nil
}

// Close releases the underlying writer's connections.
func (p *Producer) Close() error {
	return p.writer.Close()
}
