package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaConfig configures the Kafka publisher. PublishTimeout bounds each
// Publish call, which runs on the request path.
type KafkaConfig struct {
	Brokers        []string
	Topic          string
	BatchTimeout   time.Duration
	PublishTimeout time.Duration
}

const defaultPublishTimeout = 2 * time.Second

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events as JSON to a Kafka topic, keyed by resource id.
type KafkaPublisher struct {
	writer  messageWriter
	topic   string
	timeout time.Duration
}

// NewKafkaPublisher constructs a publisher backed by a kafka.Writer.
func NewKafkaPublisher(cfg KafkaConfig) (*KafkaPublisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("events: kafka brokers are required")
	}
	if cfg.Topic == "" {
		return nil, errors.New("events: kafka topic is required")
	}

	batchTimeout := cfg.BatchTimeout
	if batchTimeout <= 0 {
		batchTimeout = 50 * time.Millisecond
	}

	timeout := cfg.PublishTimeout
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           batchTimeout,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		WriteTimeout:           timeout,
	}
	return &KafkaPublisher{writer: writer, topic: cfg.Topic, timeout: timeout}, nil
}

// Publish implements Publisher.
func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	if p == nil || p.writer == nil {
		return errors.New("events: kafka publisher not initialised")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	msg, err := encodeMessage(event)
	if err != nil {
		return err
	}
	timeout := p.timeout
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("events: write %s to %s: %w", event.Topic, p.topic, err)
	}
	return nil
}

// Close flushes pending messages and releases the writer.
func (p *KafkaPublisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

func encodeMessage(event Event) (kafka.Message, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("events: encode %s: %w", event.Topic, err)
	}
	return kafka.Message{
		Key:   []byte(event.ResourceID),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Topic)},
		},
	}, nil
}
