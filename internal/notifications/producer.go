package notifications

import (
	"context"
	"fmt"
	"time"

	"spotly/internal/shared/config"
	"spotly/pkg/logger"

	"github.com/IBM/sarama"
)

// EventProducer writes ticket events to the event log
type EventProducer interface {
	Publish(ctx context.Context, event *TicketEvent) error
	Close() error
}

// KafkaProducerConfig contains configuration for the Kafka event producer
type KafkaProducerConfig struct {
	Brokers          []string
	Topic            string
	ClientID         string
	RetryMax         int
	Timeout          time.Duration
	RequiredAcks     sarama.RequiredAcks
	CompressionType  sarama.CompressionCodec
	IdempotentWrites bool
	MaxMessageBytes  int
}

// DefaultKafkaProducerConfig returns a default producer configuration
func DefaultKafkaProducerConfig() *KafkaProducerConfig {
	return &KafkaProducerConfig{
		Brokers:          []string{"localhost:9092"},
		Topic:            "spotly.ticket-events",
		ClientID:         "spotly",
		RetryMax:         3,
		Timeout:          10 * time.Second,
		RequiredAcks:     sarama.WaitForAll,
		CompressionType:  sarama.CompressionSnappy,
		IdempotentWrites: true,
		MaxMessageBytes:  1000000,
	}
}

// ProducerConfigFromConfig applies the application Kafka settings to the defaults
func ProducerConfigFromConfig(cfg config.KafkaConfig) *KafkaProducerConfig {
	pc := DefaultKafkaProducerConfig()
	if len(cfg.Brokers) > 0 {
		pc.Brokers = cfg.Brokers
	}
	if cfg.Topic != "" {
		pc.Topic = cfg.Topic
	}
	if cfg.ClientID != "" {
		pc.ClientID = cfg.ClientID
	}
	return pc
}

// NewSaramaProducerConfig translates the producer configuration for sarama
func NewSaramaProducerConfig(cfg *KafkaProducerConfig) *sarama.Config {
	saramaConfig := sarama.NewConfig()
	saramaConfig.ClientID = cfg.ClientID

	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = cfg.RequiredAcks
	saramaConfig.Producer.Compression = cfg.CompressionType
	saramaConfig.Producer.Retry.Max = cfg.RetryMax
	saramaConfig.Producer.Timeout = cfg.Timeout
	saramaConfig.Producer.Idempotent = cfg.IdempotentWrites
	saramaConfig.Producer.MaxMessageBytes = cfg.MaxMessageBytes

	if cfg.IdempotentWrites {
		saramaConfig.Net.MaxOpenRequests = 1
	}

	// Same key, same partition: per-spot ordering
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner
	return saramaConfig
}

// KafkaEventProducer publishes ticket events to Kafka
type KafkaEventProducer struct {
	producer sarama.SyncProducer
	config   *KafkaProducerConfig
}

func NewKafkaEventProducer(cfg *KafkaProducerConfig) (*KafkaEventProducer, error) {
	producer, err := sarama.NewSyncProducer(cfg.Brokers, NewSaramaProducerConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.GetDefault().Info("Kafka event producer created", "brokers", cfg.Brokers, "topic", cfg.Topic)
	return NewKafkaEventProducerWith(producer, cfg), nil
}

// NewKafkaEventProducerWith wraps an existing sarama producer
func NewKafkaEventProducerWith(producer sarama.SyncProducer, cfg *KafkaProducerConfig) *KafkaEventProducer {
	return &KafkaEventProducer{producer: producer, config: cfg}
}

func (p *KafkaEventProducer) Publish(ctx context.Context, event *TicketEvent) error {
	value, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     p.config.Topic,
		Key:       sarama.StringEncoder(event.GetPartitionKey()),
		Value:     sarama.ByteEncoder(value),
		Headers:   createHeaders(event),
		Timestamp: event.OccurredAt,
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to send event to Kafka: %w", err)
	}

	logger.FromContext(ctx).Debug("Ticket event published",
		"topic", p.config.Topic,
		"partition", partition,
		"offset", offset,
		"event_type", event.Type,
		"spot_id", event.SpotID.String(),
	)
	return nil
}

func createHeaders(event *TicketEvent) []sarama.RecordHeader {
	headers := []sarama.RecordHeader{
		{Key: []byte("event_id"), Value: []byte(event.ID.String())},
		{Key: []byte("event_type"), Value: []byte(event.Type)},
		{Key: []byte("spot_id"), Value: []byte(event.SpotID.String())},
		{Key: []byte("version"), Value: []byte(EventVersion)},
		{Key: []byte("producer"), Value: []byte("spotly")},
		{Key: []byte("occurred_at"), Value: []byte(event.OccurredAt.Format(time.RFC3339Nano))},
	}

	if event.TicketID != nil {
		headers = append(headers, sarama.RecordHeader{
			Key:   []byte("ticket_id"),
			Value: []byte(event.TicketID.String()),
		})
	}
	return headers
}

func (p *KafkaEventProducer) Close() error {
	if p.producer == nil {
		return nil
	}
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka producer: %w", err)
	}
	logger.GetDefault().Info("Kafka event producer closed")
	return nil
}

// NoopProducer discards events; used when Kafka is disabled
type NoopProducer struct{}

func (NoopProducer) Publish(ctx context.Context, event *TicketEvent) error { return nil }
func (NoopProducer) Close() error                                          { return nil }
