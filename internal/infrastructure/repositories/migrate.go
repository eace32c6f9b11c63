package repositories

import (
	"gorm.io/gorm"
	"seller-panel.backend/internal/infrastructure/models"
)

// AutoMigrate creates or updates the seller and catalog tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Seller{},
		&models.Category{},
		&models.Product{},
		&models.Variant{},
	)
}
