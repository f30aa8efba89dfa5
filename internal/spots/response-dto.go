package spots

import "time"

type SpotResponse struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Note      *string        `json:"note,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	Slots     []SlotResponse `json:"slots"`
}

type SlotResponse struct {
	ID                string    `json:"id"`
	Start             time.Time `json:"start"`
	End               time.Time `json:"end"`
	CapacityTotal     int       `json:"capacity_total"`
	CapacityRemaining int       `json:"capacity_remaining"`
	Note              *string   `json:"note,omitempty"`
}
