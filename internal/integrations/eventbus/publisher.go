package eventbus

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
)

const (
	headerEventID       = "event_id"
	headerEventType     = "event_type"
	headerAggregateType = "aggregate_type"
)

// Publisher публикует события outbox в Kafka.
// Топик = topicPrefix + тип события, ключ = ID агрегата, поэтому события
// одной записи попадают в одну партицию и читаются по порядку.
type Publisher struct {
	writer      MessageWriter
	topicPrefix string
}

// NewKafkaWriter создает writer без фиксированного топика
func NewKafkaWriter(brokers []string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
	}
}

// NewPublisher создает publisher поверх writer
func NewPublisher(writer MessageWriter, topicPrefix string) *Publisher {
	return &Publisher{writer: writer, topicPrefix: topicPrefix}
}

// Publish отправляет события одной пачкой
func (p *Publisher) Publish(ctx context.Context, events []domain.OutboxEvent) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		msgs = append(msgs, p.toMessage(e))
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}
	return nil
}

// Close закрывает writer
func (p *Publisher) Close() error {
	return p.writer.Close()
}

func (p *Publisher) toMessage(e domain.OutboxEvent) kafka.Message {
	return kafka.Message{
		Topic: p.topicPrefix + e.EventType,
		Key:   []byte(e.AggregateID),
		Value: e.Payload,
		Time:  e.CreatedAt,
		Headers: []kafka.Header{
			{Key: headerEventID, Value: []byte(e.EventID)},
			{Key: headerEventType, Value: []byte(e.EventType)},
			{Key: headerAggregateType, Value: []byte(e.AggregateType)},
		},
	}
}
