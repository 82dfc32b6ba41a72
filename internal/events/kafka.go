package events

import (
	"context"
	"encoding/json"

	"github.com/HenryBuilds/commercio/internal/service"

	"github.com/segmentio/kafka-go"
)

// Publisher пишет события заказов в kafka; ключ сообщения — order_id,
// чтобы события одного заказа попадали в одну партицию.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

func (p *Publisher) publish(ctx context.Context, key string, eventType string, payload any) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
		},
	})
}

func (p *Publisher) PublishOrderCreated(ctx context.Context, e service.OrderCreatedEvent) error {
	return p.publish(ctx, e.OrderID.String(), "order.created", e)
}

func (p *Publisher) PublishOrderConfirmed(ctx context.Context, e service.OrderConfirmedEvent) error {
	return p.publish(ctx, e.OrderID.String(), "order.confirmed", e)
}

func (p *Publisher) PublishOrderShipped(ctx context.Context, e service.OrderShippedEvent) error {
	return p.publish(ctx, e.OrderID.String(), "order.shipped", e)
}

func (p *Publisher) PublishOrderCancelled(ctx context.Context, e service.OrderCancelledEvent) error {
	return p.publish(ctx, e.OrderID.String(), "order.cancelled", e)
}

var _ service.EventBus = (*Publisher)(nil)
