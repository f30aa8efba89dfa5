package notifications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"spotly/internal/shared/config"
	"spotly/pkg/logger"

	"github.com/IBM/sarama"
)

// EventHandler processes one decoded ticket event
type EventHandler func(ctx context.Context, event *TicketEvent) error

type ConsumerConfig struct {
	Brokers           []string
	GroupID           string
	Topics            []string
	ClientID          string
	SessionTimeout    time.Duration
	Heartbeat         time.Duration
	RetryBackoff      time.Duration
	MaxProcessingTime time.Duration
	OffsetOldest      bool
}

func DefaultConsumerConfig() *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:           []string{"localhost:9092"},
		GroupID:           "spotly-ticketfeed",
		Topics:            []string{"spotly.ticket-events"},
		ClientID:          "spotly-ticketfeed",
		SessionTimeout:    30 * time.Second,
		Heartbeat:         3 * time.Second,
		RetryBackoff:      100 * time.Millisecond,
		MaxProcessingTime: time.Minute,
		OffsetOldest:      false,
	}
}

func ConsumerConfigFromConfig(cfg config.KafkaConfig) *ConsumerConfig {
	cc := DefaultConsumerConfig()
	if len(cfg.Brokers) > 0 {
		cc.Brokers = cfg.Brokers
	}
	if cfg.GroupID != "" {
		cc.GroupID = cfg.GroupID
	}
	if cfg.Topic != "" {
		cc.Topics = []string{cfg.Topic}
	}
	return cc
}

// FeedConsumer tails the ticket event topic as part of a consumer group
type FeedConsumer struct {
	consumerGroup sarama.ConsumerGroup
	config        *ConsumerConfig
	handler       EventHandler
}

func NewFeedConsumer(cfg *ConsumerConfig, handler EventHandler) (*FeedConsumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.ClientID = cfg.ClientID
	saramaConfig.Consumer.Group.Session.Timeout = cfg.SessionTimeout
	saramaConfig.Consumer.Group.Heartbeat.Interval = cfg.Heartbeat
	saramaConfig.Consumer.Retry.Backoff = cfg.RetryBackoff
	saramaConfig.Consumer.MaxProcessingTime = cfg.MaxProcessingTime
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
	saramaConfig.Consumer.Offsets.AutoCommit.Interval = time.Second

	if cfg.OffsetOldest {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	}

	consumerGroup, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &FeedConsumer{
		consumerGroup: consumerGroup,
		config:        cfg,
		handler:       handler,
	}, nil
}

// Run consumes until ctx is cancelled, rejoining the group after every rebalance
func (c *FeedConsumer) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info("Starting ticket feed consumer", "topics", c.config.Topics, "group_id", c.config.GroupID)

	go func() {
		for err := range c.consumerGroup.Errors() {
			log.Warn("Consumer group error", "error", err.Error())
		}
	}()

	handler := &feedHandler{handler: c.handler}
	for {
		err := c.consumerGroup.Consume(ctx, c.config.Topics, handler)
		if errors.Is(err, sarama.ErrClosedConsumerGroup) {
			return nil
		}
		if err != nil {
			log.Error("Error consuming ticket events", "error", err.Error())
			select {
			case <-time.After(time.Second):
			case <-ctx.Done():
			}
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

func (c *FeedConsumer) Close() error {
	if err := c.consumerGroup.Close(); err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}
	return nil
}

type feedHandler struct {
	handler EventHandler
}

func (h *feedHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *feedHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *feedHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok || message == nil {
				return nil
			}
			if err := h.processMessage(session.Context(), message); err != nil {
				// Undecodable or failed events are skipped; the feed is informational
				logger.FromContext(session.Context()).Warn("Skipping ticket event",
					"topic", message.Topic,
					"partition", message.Partition,
					"offset", message.Offset,
					"error", err.Error(),
				)
			}
			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}

func (h *feedHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage) error {
	event, err := FromJSON(message.Value)
	if err != nil {
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}
	return h.handler(ctx, event)
}
