package broker

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/benedict-erwin/weather-insight/pkg/logger"
)

// KafkaPublisher produces messages to a single Kafka topic
type KafkaPublisher struct {
	writer *kafkago.Writer
}

// NewKafkaPublisher creates a producer for topic
func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("no Kafka brokers configured")
	}
	if topic == "" {
		return nil, fmt.Errorf("kafka topic is required")
	}

	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
		WriteTimeout:           10 * time.Second,
	}

	logger.WithScope("broker").Info().Strs("brokers", brokers).Str("topic", topic).Msg("Kafka publisher initialized")
	return &KafkaPublisher{writer: w}, nil
}

// Publish writes msg synchronously
func (p *KafkaPublisher) Publish(ctx context.Context, msg Message) error {
	km, err := toKafkaMessage(msg)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, km); err != nil {
		return fmt.Errorf("publish %s: %w", msg.EventType, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func toKafkaMessage(msg Message) (kafkago.Message, error) {
	data, err := json.Marshal(msg.Value)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize %s event: %w", msg.EventType, err)
	}
	return kafkago.Message{
		Key:   []byte(msg.Key),
		Value: data,
		Time:  msg.OccurredAt,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(msg.EventType)},
			{Key: "occurred_at", Value: []byte(msg.OccurredAt.Format(time.RFC3339))},
		},
	}, nil
}
