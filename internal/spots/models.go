package spots

import (
	"time"

	"github.com/google/uuid"
)

// Spot is a named event that owns an ordered set of time slots.
// A spot is never modified after creation.
type Spot struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null;size:255"`
	Note      *string   `json:"note,omitempty" gorm:"size:1024"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	Slots []Slot `json:"slots,omitempty" gorm:"foreignKey:SpotID"`
}

// Slot is a time window of a spot with a fixed ticket capacity.
// CapacityRemaining only ever decreases, and only through allocation.
type Slot struct {
	ID                uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	SpotID            uuid.UUID `json:"spot_id" gorm:"type:uuid;not null;index:idx_slots_spot_start,priority:1"`
	Position          int       `json:"position" gorm:"not null"`
	StartTime         time.Time `json:"start_time" gorm:"not null;index:idx_slots_spot_start,priority:2"`
	EndTime           time.Time `json:"end_time" gorm:"not null"`
	CapacityTotal     int       `json:"capacity_total" gorm:"not null;check:chk_slots_capacity_total,capacity_total >= 0"`
	CapacityRemaining int       `json:"capacity_remaining" gorm:"not null;check:chk_slots_capacity_remaining,capacity_remaining >= 0 AND capacity_remaining <= capacity_total"`
	Note              *string   `json:"note,omitempty" gorm:"size:1024"`
	CreatedAt         time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt         time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// SpotRef is the immutable identity of a spot, safe to cache indefinitely
type SpotRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Issued returns the number of tickets allocated against the slot
func (s *Slot) Issued() int {
	return s.CapacityTotal - s.CapacityRemaining
}

// Helper methods
func (s *Spot) ToResponse() SpotResponse {
	slots := make([]SlotResponse, 0, len(s.Slots))
	for i := range s.Slots {
		slots = append(slots, s.Slots[i].ToResponse())
	}
	return SpotResponse{
		ID:        s.ID.String(),
		Name:      s.Name,
		Note:      s.Note,
		CreatedAt: s.CreatedAt,
		Slots:     slots,
	}
}

func (s *Slot) ToResponse() SlotResponse {
	return SlotResponse{
		ID:                s.ID.String(),
		Start:             s.StartTime,
		End:               s.EndTime,
		CapacityTotal:     s.CapacityTotal,
		CapacityRemaining: s.CapacityRemaining,
		Note:              s.Note,
	}
}

// TableName specifies the table name for GORM
func (Spot) TableName() string {
	return "spots"
}

func (Slot) TableName() string {
	return "slots"
}
