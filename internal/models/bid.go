package models

import "time"

// Bid is a freelancer's proposal against a gig. The composite unique index
// enforces one bid per (gig, freelancer) at the point of write.
type Bid struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	GigID        string    `gorm:"type:uuid;not null;uniqueIndex:idx_bids_gig_freelancer" json:"gig_id"`
	FreelancerID string    `gorm:"type:uuid;not null;uniqueIndex:idx_bids_gig_freelancer" json:"freelancer_id"`
	Message      string    `gorm:"not null" json:"message"`
	Price        float64   `gorm:"not null" json:"price"`
	Status       BidStatus `gorm:"not null;default:'pending';index" json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}
