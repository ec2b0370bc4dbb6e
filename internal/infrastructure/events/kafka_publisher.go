package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/tu-usuario/activos-pro/internal/application/basket"
	"github.com/tu-usuario/activos-pro/pkg/config"
)

var _ basket.EventPublisher = (*KafkaPublisher)(nil)

// KafkaPublisher publica eventos de canastas en un tópico Kafka. La clave del
// mensaje es el ID de la canasta, así todos los eventos de una misma canasta
// caen en la misma partición.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher construye el publicador sobre los brokers configurados.
func NewKafkaPublisher(cfg config.KafkaConfig) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

// PublishBasketCompleted serializa y publica el evento de canasta completada.
func (p *KafkaPublisher) PublishBasketCompleted(ctx context.Context, event basket.BasketCompletedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(event.BasketID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte("basket.completed")},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publicar basket.completed: %w", err)
	}
	return nil
}

// Close libera el writer subyacente.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher descarta eventos; se usa cuando no hay brokers configurados.
type NoopPublisher struct{}

// PublishBasketCompleted no hace nada.
func (NoopPublisher) PublishBasketCompleted(context.Context, basket.BasketCompletedEvent) error {
	return nil
}
