package redemptions

import (
	"time"

	"github.com/google/uuid"
)

// Redemption records one presentment of a ticket at the gate
type Redemption struct {
	SpotID      uuid.UUID
	TicketID    uuid.UUID
	Previous    int
	PresentedAt time.Time
}

func (r *Redemption) ToResponse() RedeemResponse {
	return RedeemResponse{
		SpotID:               r.SpotID.String(),
		TicketID:             r.TicketID.String(),
		PreviousPresentments: r.Previous,
		PresentedAt:          r.PresentedAt,
	}
}
