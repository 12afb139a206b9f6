package database

import (
	"fmt"

	"gorm.io/gorm"

	"gigflow_backend/internal/models"
)

// AutoMigrate creates or updates the schema for every model. The composite
// unique index on bids (gig_id, freelancer_id) comes from the model tags and
// is what makes duplicate submissions race-safe.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Gig{},
		&models.Bid{},
		&models.Notification{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}
	return nil
}
