package models

import "time"

// Gig is a posted job. Status moves open -> assigned exactly once, via the
// hire transition; AssignedTo is set if and only if Status is assigned.
type Gig struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID     string    `gorm:"type:uuid;not null;index" json:"owner_id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"not null" json:"description"`
	Budget      float64   `gorm:"not null" json:"budget"`
	Status      GigStatus `gorm:"not null;default:'open';index" json:"status"`
	AssignedTo  *string   `gorm:"type:uuid" json:"assigned_to,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
