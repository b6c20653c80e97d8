package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Mahiagarwal-09/ecommerce-website/internal/domain"
	"github.com/segmentio/kafka-go"
)

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

// Event is what downstream consumers (fulfilment, notifications) see when an
// order is created or its status changes.
type Event struct {
	Type       string             `json:"type"`
	OrderID    string             `json:"order_id"`
	UserID     string             `json:"user_id"`
	Status     domain.OrderStatus `json:"status"`
	TotalCents int64              `json:"total_cents"`
	Currency   string             `json:"currency"`
	OccurredAt time.Time          `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NoopPublisher is used for local runs and tests where no broker exists.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }

// KafkaPublisher writes order events to a single topic, keyed by order id so
// per-order ordering is preserved.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(topic string, brokers ...string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("write order event: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func eventFrom(eventType string, order *domain.Order) Event {
	return Event{
		Type:       eventType,
		OrderID:    order.ID.String(),
		UserID:     order.UserID,
		Status:     order.Status,
		TotalCents: order.Total.Amount,
		Currency:   order.Total.Currency.String(),
		OccurredAt: time.Now(),
	}
}
