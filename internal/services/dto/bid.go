package dto

// --- Bid Requests ---

type SubmitBidRequest struct {
	Message string  `json:"message" validate:"required,max=500"`
	Price   float64 `json:"price" validate:"gte=0"`
}
