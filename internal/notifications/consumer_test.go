package notifications

import (
	"context"
	"testing"
	"time"

	"spotly/internal/shared/config"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	sarama.ConsumerGroupSession
	ctx    context.Context
	marked []int64
}

func (s *fakeSession) Context() context.Context { return s.ctx }

func (s *fakeSession) MarkMessage(msg *sarama.ConsumerMessage, metadata string) {
	s.marked = append(s.marked, msg.Offset)
}

type fakeClaim struct {
	sarama.ConsumerGroupClaim
	messages chan *sarama.ConsumerMessage
}

func (c *fakeClaim) Messages() <-chan *sarama.ConsumerMessage { return c.messages }

func TestFeedHandlerConsumeClaim(t *testing.T) {
	event := newEvent(EventTicketRedeemed, uuid.New(), time.Now())
	value, err := event.ToJSON()
	require.NoError(t, err)

	claim := &fakeClaim{messages: make(chan *sarama.ConsumerMessage, 3)}
	claim.messages <- &sarama.ConsumerMessage{Offset: 10, Value: value}
	claim.messages <- &sarama.ConsumerMessage{Offset: 11, Value: []byte("{not json")}
	claim.messages <- &sarama.ConsumerMessage{Offset: 12, Value: value}
	close(claim.messages)

	var seen []*TicketEvent
	handler := &feedHandler{handler: func(ctx context.Context, e *TicketEvent) error {
		seen = append(seen, e)
		return nil
	}}
	session := &fakeSession{ctx: context.Background()}

	require.NoError(t, handler.ConsumeClaim(session, claim))

	require.Len(t, seen, 2)
	assert.Equal(t, event.ID, seen[0].ID)
	assert.Equal(t, EventTicketRedeemed, seen[1].Type)
	assert.Equal(t, []int64{10, 11, 12}, session.marked, "bad events are skipped, not retried forever")
}

func TestFeedHandlerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	handler := &feedHandler{handler: func(context.Context, *TicketEvent) error { return nil }}
	claim := &fakeClaim{messages: make(chan *sarama.ConsumerMessage)}

	assert.NoError(t, handler.ConsumeClaim(&fakeSession{ctx: ctx}, claim))
}

func TestConsumerConfigFromConfig(t *testing.T) {
	cc := ConsumerConfigFromConfig(config.KafkaConfig{
		Brokers: []string{"kafka-1:9092", "kafka-2:9092"},
		Topic:   "events",
		GroupID: "gate-feed",
	})

	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cc.Brokers)
	assert.Equal(t, []string{"events"}, cc.Topics)
	assert.Equal(t, "gate-feed", cc.GroupID)
	assert.Equal(t, DefaultConsumerConfig().SessionTimeout, cc.SessionTimeout)
}
