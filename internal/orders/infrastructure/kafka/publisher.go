// Package kafka publishes order lifecycle events.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	"github.com/segmentio/kafka-go"

	"github.com/cpearson/order-service/internal/orders/domain"
)

type Publisher struct {
	log    *slog.Logger
	writer *kafka.Writer
	topic  string
}

func NewPublisher(log *slog.Logger, brokers []string, topic string) *Publisher {
	return &Publisher{
		log: log,
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
		},
		topic: topic,
	}
}

func (p *Publisher) PublishOrderCompleted(ctx context.Context, ev domain.OrderCompleted) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Topic: p.topic,
		Key:   []byte(strconv.FormatInt(ev.OrderID, 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("OrderCompleted")},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("event publish failed", "order_id", ev.OrderID, "err", err)
		return err
	}
	p.log.Info("event published", "order_id", ev.OrderID, "type", "OrderCompleted")
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
