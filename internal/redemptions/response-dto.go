package redemptions

import "time"

type RedeemResponse struct {
	SpotID               string    `json:"spot_id"`
	TicketID             string    `json:"ticket_id"`
	PreviousPresentments int       `json:"previous_presentments"`
	PresentedAt          time.Time `json:"presented_at"`
}
