package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType names a ticket lifecycle event on the wire
type EventType string

const (
	EventSpotCreated    EventType = "spot.created"
	EventTicketReserved EventType = "ticket.reserved"
	EventTicketRedeemed EventType = "ticket.redeemed"
)

// EventVersion is bumped when the payload changes incompatibly
const EventVersion = "1"

// TicketEvent is the payload published for every committed state change.
// Fields not relevant to the event type are omitted.
type TicketEvent struct {
	ID         uuid.UUID `json:"id"`
	Type       EventType `json:"type"`
	SpotID     uuid.UUID `json:"spot_id"`
	OccurredAt time.Time `json:"occurred_at"`

	// spot.created
	SpotName  string `json:"spot_name,omitempty"`
	SlotCount *int   `json:"slot_count,omitempty"`

	// ticket.reserved and ticket.redeemed
	TicketID     *uuid.UUID `json:"ticket_id,omitempty"`
	SlotID       *uuid.UUID `json:"slot_id,omitempty"`
	SerialNumber *int       `json:"serial_number,omitempty"`
	SlotStart    *time.Time `json:"slot_start,omitempty"`

	// ticket.redeemed
	PreviousPresentments *int `json:"previous_presentments,omitempty"`
}

func newEvent(eventType EventType, spotID uuid.UUID, at time.Time) *TicketEvent {
	return &TicketEvent{
		ID:         uuid.New(),
		Type:       eventType,
		SpotID:     spotID,
		OccurredAt: at.UTC(),
	}
}

func (e *TicketEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func FromJSON(data []byte) (*TicketEvent, error) {
	var e TicketEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// GetPartitionKey keeps all events of one spot on one partition, in order
func (e *TicketEvent) GetPartitionKey() string {
	return e.SpotID.String()
}
