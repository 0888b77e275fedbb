// Package events publishes purchase notifications for downstream consumers.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/curiousguyinhis30s/themepark-website/internal/domain"
)

const PurchaseCompleted = "purchase.completed"

type Publisher interface {
	PublishPurchase(ctx context.Context, p domain.PurchaseResult) error
}

// PurchaseEvent is the JSON value written for every completed purchase.
type PurchaseEvent struct {
	Type             string    `json:"type"`
	OrderID          string    `json:"order_id"`
	TransactionID    string    `json:"transaction_id"`
	ConfirmationCode string    `json:"confirmation_code"`
	TicketTypeID     string    `json:"ticket_type_id"`
	Quantity         int       `json:"quantity"`
	VisitDate        string    `json:"visit_date"`
	Email            string    `json:"email"`
	Total            int       `json:"total"`
	CreatedAt        time.Time `json:"created_at"`
}

func NewPurchaseEvent(p domain.PurchaseResult) PurchaseEvent {
	return PurchaseEvent{
		Type:             PurchaseCompleted,
		OrderID:          p.OrderID,
		TransactionID:    p.TransactionID,
		ConfirmationCode: p.ConfirmationCode,
		TicketTypeID:     p.TicketTypeID,
		Quantity:         p.Quantity,
		VisitDate:        p.VisitDate,
		Email:            p.Email,
		Total:            p.Total,
		CreatedAt:        p.CreatedAt,
	}
}

type Config struct {
	Brokers []string
	Topic   string
}

// messageWriter is the subset of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaPublisher(cfg Config) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		MaxAttempts:            5,
		ReadTimeout:            10 * time.Second,
		WriteTimeout:           10 * time.Second,
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: w}
}

// PublishPurchase writes one message keyed by order id so every event for
// an order lands on the same partition.
func (p *KafkaPublisher) PublishPurchase(ctx context.Context, purchase domain.PurchaseResult) error {
	value, err := json.Marshal(NewPurchaseEvent(purchase))
	if err != nil {
		return fmt.Errorf("encode purchase event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(purchase.OrderID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(PurchaseCompleted)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops every event. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) PublishPurchase(context.Context, domain.PurchaseResult) error { return nil }
