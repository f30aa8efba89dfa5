package reservations

// ReserveRequest is the optional body of a reservation
type ReserveRequest struct {
	Note *string `json:"note,omitempty" validate:"omitempty,max=1024" example:"table 4"`
}
