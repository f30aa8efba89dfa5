package reservations

import "time"

type TicketResponse struct {
	ID               string     `json:"id"`
	SpotID           string     `json:"spot_id"`
	SlotID           string     `json:"slot_id"`
	SlotStart        *time.Time `json:"slot_start,omitempty"`
	SlotEnd          *time.Time `json:"slot_end,omitempty"`
	SerialNumber     int        `json:"serial_number"`
	PresentmentCount int        `json:"presentment_count"`
	Note             *string    `json:"note,omitempty"`
	LastPresentedAt  *time.Time `json:"last_presented_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}
