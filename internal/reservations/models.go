package reservations

import (
	"time"

	"spotly/internal/spots"

	"github.com/google/uuid"
)

// Ticket is the proof of one successful allocation against a slot.
// It is created once and never released; only PresentmentCount changes.
type Ticket struct {
	ID               uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;uniqueIndex:idx_tickets_spot_ticket,priority:2"`
	SpotID           uuid.UUID  `json:"spot_id" gorm:"type:uuid;not null;uniqueIndex:idx_tickets_spot_ticket,priority:1"`
	SlotID           uuid.UUID  `json:"slot_id" gorm:"type:uuid;not null;index"`
	SerialNumber     int        `json:"serial_number" gorm:"not null"`
	PresentmentCount int        `json:"presentment_count" gorm:"not null;default:0;check:chk_tickets_presentment_count,presentment_count >= 0"`
	Note             *string    `json:"note,omitempty" gorm:"size:1024"`
	LastPresentedAt  *time.Time `json:"last_presented_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time  `json:"updated_at" gorm:"autoUpdateTime"`

	Slot *spots.Slot `json:"-" gorm:"foreignKey:SlotID"`
}

func (t *Ticket) ToResponse() TicketResponse {
	resp := TicketResponse{
		ID:               t.ID.String(),
		SpotID:           t.SpotID.String(),
		SlotID:           t.SlotID.String(),
		SerialNumber:     t.SerialNumber,
		PresentmentCount: t.PresentmentCount,
		Note:             t.Note,
		LastPresentedAt:  t.LastPresentedAt,
		CreatedAt:        t.CreatedAt,
	}
	if t.Slot != nil {
		start, end := t.Slot.StartTime, t.Slot.EndTime
		resp.SlotStart = &start
		resp.SlotEnd = &end
	}
	return resp
}

// TableName specifies the table name for GORM
func (Ticket) TableName() string {
	return "tickets"
}
