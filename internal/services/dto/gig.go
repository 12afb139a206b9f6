package dto

// --- Gig Requests ---

type CreateGigRequest struct {
	Title       string  `json:"title" validate:"required,min=3,max=100"`
	Description string  `json:"description" validate:"required,max=2000"`
	Budget      float64 `json:"budget" validate:"gte=0"`
}

type UpdateGigRequest struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=3,max=100"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	Budget      *float64 `json:"budget,omitempty" validate:"omitempty,gte=0"`
}

type GigSearchQuery struct {
	Search string `form:"search" json:"search"`
	Status string `form:"status" json:"status" validate:"omitempty,oneof=open assigned"`
}
