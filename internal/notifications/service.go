package notifications

import (
	"context"
	"sync"
	"time"

	"spotly/internal/redemptions"
	"spotly/internal/reservations"
	"spotly/internal/spots"
	"spotly/pkg/logger"
)

const defaultQueueSize = 1024

// Publisher turns committed domain changes into ticket events. A single
// background worker hands events to the producer. When the queue is full
// the event is dropped and logged.
type Publisher struct {
	producer EventProducer
	queue    chan *TicketEvent
	log      *logger.Logger
	now      func() time.Time

	closeOnce sync.Once
	done      chan struct{}
}

func NewPublisher(producer EventProducer, queueSize int) *Publisher {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	p := &Publisher{
		producer: producer,
		queue:    make(chan *TicketEvent, queueSize),
		log:      logger.GetDefault(),
		now:      func() time.Time { return time.Now().UTC() },
		done:     make(chan struct{}),
	}
	go p.run()
	return p
}

func (p *Publisher) run() {
	defer close(p.done)
	for event := range p.queue {
		if err := p.producer.Publish(context.Background(), event); err != nil {
			p.log.Warn("Failed to publish ticket event",
				"event_type", event.Type,
				"spot_id", event.SpotID.String(),
				"error", err.Error(),
			)
		}
	}
}

func (p *Publisher) enqueue(ctx context.Context, event *TicketEvent) {
	select {
	case p.queue <- event:
	default:
		logger.FromContext(ctx).Warn("Ticket event queue full, dropping event",
			"event_type", event.Type,
			"spot_id", event.SpotID.String(),
		)
	}
}

func (p *Publisher) PublishSpotCreated(ctx context.Context, spot *spots.Spot) {
	event := newEvent(EventSpotCreated, spot.ID, p.now())
	slotCount := len(spot.Slots)
	event.SpotName = spot.Name
	event.SlotCount = &slotCount
	p.enqueue(ctx, event)
}

func (p *Publisher) PublishTicketReserved(ctx context.Context, ticket *reservations.Ticket) {
	event := newEvent(EventTicketReserved, ticket.SpotID, p.now())
	ticketID, slotID, serial := ticket.ID, ticket.SlotID, ticket.SerialNumber
	event.TicketID = &ticketID
	event.SlotID = &slotID
	event.SerialNumber = &serial
	if ticket.Slot != nil {
		start := ticket.Slot.StartTime
		event.SlotStart = &start
	}
	p.enqueue(ctx, event)
}

func (p *Publisher) PublishTicketRedeemed(ctx context.Context, redemption *redemptions.Redemption) {
	event := newEvent(EventTicketRedeemed, redemption.SpotID, redemption.PresentedAt)
	ticketID, previous := redemption.TicketID, redemption.Previous
	event.TicketID = &ticketID
	event.PreviousPresentments = &previous
	p.enqueue(ctx, event)
}

// Close drains queued events and closes the producer. Publishing after
// Close is not allowed.
func (p *Publisher) Close() error {
	var err error
	p.closeOnce.Do(func() {
		close(p.queue)
		<-p.done
		err = p.producer.Close()
	})
	return err
}
