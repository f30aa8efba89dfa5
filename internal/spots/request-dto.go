package spots

import "time"

type CreateSpotRequest struct {
	Name  string              `json:"name" example:"Summer Fair 2026"`
	Note  *string             `json:"note,omitempty" validate:"omitempty,max=1024"`
	Slots []CreateSlotRequest `json:"slots" validate:"dive"`
}

// CreateSlotRequest describes one slot. Capacity defaults to the configured
// default slot capacity when omitted.
type CreateSlotRequest struct {
	Start    time.Time `json:"start" example:"2026-07-01T09:00:00Z"`
	End      time.Time `json:"end" example:"2026-07-01T10:00:00Z"`
	Capacity *int      `json:"capacity,omitempty" example:"100"`
	Note     *string   `json:"note,omitempty" validate:"omitempty,max=1024"`
}
