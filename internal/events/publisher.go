package events

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
	"github.com/klarrein/dashboard/libs/kafkax"
	"github.com/segmentio/kafka-go"
)

// Event types published by the dashboard. Topic name equals event type.
const (
	AppointmentCreated = "appointment.created.v1"
	WorkerChanged      = "worker.changed.v1"
	ClientChanged      = "client.changed.v1"
)

// Publisher emits advisory domain events to Kafka. Publishing is best
// effort: a failed write is logged and never fails the originating request.
type Publisher struct {
	writer *kafka.Writer
	logger *slog.Logger
}

// NewPublisher returns a disabled publisher when no brokers are configured;
// Publish and Close are then no-ops.
func NewPublisher(brokers string, logger *slog.Logger) *Publisher {
	list := kafkax.SplitBrokers(brokers)
	if len(list) == 0 {
		logger.Warn("event publisher disabled (no kafka brokers configured)")
		return &Publisher{logger: logger}
	}
	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers:  list,
		Balancer: &kafka.Hash{},
	})
	return &Publisher{writer: writer, logger: logger}
}

func (p *Publisher) Publish(ctx context.Context, eventType, aggregateID string, payload any) {
	if p.writer == nil {
		return
	}
	value, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("event payload marshal failed", "event_type", eventType, "err", err)
		return
	}
	msg := kafka.Message{
		Topic: eventType,
		Key:   []byte(aggregateID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(uuid.NewString())},
			{Key: "event_type", Value: []byte(eventType)},
		},
	}
	msg.Headers = kafkax.InjectTraceHeaders(ctx, msg.Headers)
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("event publish failed", "event_type", eventType, "err", err)
	}
}

func (p *Publisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
