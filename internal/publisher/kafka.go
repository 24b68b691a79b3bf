package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SergeyBogomolovv/publika-insight/internal/config"
	"github.com/SergeyBogomolovv/publika-insight/internal/entities"

	"github.com/segmentio/kafka-go"
)

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

// OrderEvent сообщение в топик событий заказа
type OrderEvent struct {
	Type         string    `json:"type"`
	OrderID      string    `json:"order_id"`
	Status       string    `json:"status"`
	PackageID    string    `json:"package_id"`
	PackagePrice int64     `json:"package_price"`
	Email        string    `json:"email"`
	OccurredAt   time.Time `json:"occurred_at"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaPublisher struct {
	writer messageWriter
	now    func() time.Time
}

func NewKafkaPublisher(cfg config.Kafka) *kafkaPublisher {
	return &kafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Topic:                  cfg.EventsTopic,
			Balancer:               &kafka.Hash{},
			BatchTimeout:           cfg.BatchTimeout,
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
		now: time.Now,
	}
}

func (p *kafkaPublisher) OrderCreated(ctx context.Context, order entities.Order) error {
	return p.publish(ctx, EventOrderCreated, order)
}

func (p *kafkaPublisher) OrderStatusChanged(ctx context.Context, order entities.Order) error {
	return p.publish(ctx, EventOrderStatusChanged, order)
}

func (p *kafkaPublisher) publish(ctx context.Context, eventType string, order entities.Order) error {
	event := OrderEvent{
		Type:         eventType,
		OrderID:      order.OrderID,
		Status:       order.Status.String(),
		PackageID:    order.Package.ID,
		PackagePrice: order.Package.Price,
		Email:        order.Email,
		OccurredAt:   p.now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// ключ по id заказа, чтобы события одного заказа шли в одну партицию по порядку
	msg := kafka.Message{
		Key:   []byte(order.OrderID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write %s event: %w", eventType, err)
	}
	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}
